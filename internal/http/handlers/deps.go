package handlers

import (
	"carmarket/internal/config"
	"carmarket/internal/render"
	"carmarket/internal/services"
)

type Deps struct {
	SearchHandler  *SearchHandler
	ListingHandler *ListingHandler
	APIHandler     *APIHandler
	MediaHandler   *MediaHandler
}

func NewDeps(svc *services.ListingService, md *render.Markdown, cfg config.Config) *Deps {
	skin := render.ParseSkin(cfg.CardSkin, render.SkinRow)
	return &Deps{
		SearchHandler:  &SearchHandler{Listings: svc, DefaultSkin: skin},
		ListingHandler: &ListingHandler{Listings: svc, Markdown: md},
		APIHandler:     &APIHandler{Listings: svc},
		MediaHandler:   &MediaHandler{Dir: cfg.MediaDir},
	}
}

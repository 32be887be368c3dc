// Package handler wires the HTTP surface: public complaint intake, the
// admin session flow, the guarded status/dashboard endpoints, the machine
// API and the geocode relay.
package handler

import (
	"roadwatch/backend/internal/complaint"
	"roadwatch/backend/internal/config"
	"roadwatch/backend/internal/geocode"
	"roadwatch/backend/internal/storage"
)

// Handler carries the services every endpoint depends on.
type Handler struct {
	Complaints *complaint.Service
	Storage    storage.Storage
	Geocoder   *geocode.Client
	Config     *config.Config
}

func NewHandler(svc *complaint.Service, s storage.Storage, g *geocode.Client, cfg *config.Config) *Handler {
	return &Handler{
		Complaints: svc,
		Storage:    s,
		Geocoder:   g,
		Config:     cfg,
	}
}

package setup

import (
	"github.com/retroboard-dev/retroboard/internal/config"
	"github.com/retroboard-dev/retroboard/internal/handler"
	"github.com/retroboard-dev/retroboard/internal/jwt"
	"github.com/retroboard-dev/retroboard/internal/realtime"
	"github.com/retroboard-dev/retroboard/internal/service"
	"github.com/retroboard-dev/retroboard/internal/storage/pg"
	"github.com/retroboard-dev/retroboard/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config   *config.Config
	Storage  *pg.Storage
	Listener *pg.Listener
	Hub      *realtime.Hub
	Jwt      jwt.JwtService
	Handler  *handler.Handler
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	listener, err := pg.NewListener(cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	hub := realtime.NewHub()
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	boards := service.NewBoard(storage, &utils.BoardValidator{MaxTitleLen: cfg.Public.MaxTitleLen})
	items := service.NewItem(storage, storage, &utils.ContentValidator{MaxLen: cfg.Public.MaxContentLen}, hub)

	h := handler.New(auth, boards, items, hub, cfg)

	return &Dependencies{
		Config:   cfg,
		Storage:  storage,
		Listener: listener,
		Hub:      hub,
		Jwt:      jwtService,
		Handler:  h,
	}, nil
}

// Close releases everything SetupDependencies opened.
func (d *Dependencies) Close() {
	d.Listener.Close()
	d.Storage.Cleanup()
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
	"github.com/jhoicas/agenda-api/internal/infrastructure/memstore"
	"github.com/jhoicas/agenda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agenda-api/pkg/config"
	"github.com/jhoicas/agenda-api/pkg/logger"
)

// orgFile formato del organigrama en archivo.
type orgFile struct {
	Users []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Funcional string `json:"funcional"`
		Role      string `json:"role"`
	} `json:"users"`
	Edges []struct {
		SubordinateID string `json:"subordinate_id"`
		SuperiorID    string `json:"superior_id"`
	} `json:"edges"`
}

// source repositorios de lectura del organigrama y su cierre.
type source struct {
	users repository.UserRepository
	edges repository.HierarchyRepository
	close func()
}

func openSource(ctx context.Context, flags *rootFlags) (*source, error) {
	if flags.file != "" {
		store, err := loadFile(flags.file)
		if err != nil {
			return nil, err
		}
		return &source{
			users: memstore.NewUserRepository(store),
			edges: memstore.NewHierarchyRepository(store),
			close: func() {},
		}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(logger.Config{Env: "development", Level: flags.logLevel}, os.Stderr)
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("db", cfg.DB.DBName).Msg("conectado")
	return &source{
		users: postgres.NewUserRepository(pool),
		edges: postgres.NewHierarchyRepository(pool),
		close: pool.Close,
	}, nil
}

// loadFile carga un organigrama JSON en un store en memoria.
func loadFile(path string) (*memstore.Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	var f orgFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear %s: %w", path, err)
	}
	store := memstore.New()
	known := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		role, err := entity.ParseRole(u.Role)
		if err != nil {
			return nil, fmt.Errorf("usuario %s: %w", u.ID, err)
		}
		id := entity.NormalizeID(u.ID)
		store.AddUser(&entity.User{ID: id, Name: u.Name, Funcional: u.Funcional, Role: role})
		known[id] = true
	}
	for _, e := range f.Edges {
		sub, sup := entity.NormalizeID(e.SubordinateID), entity.NormalizeID(e.SuperiorID)
		if !known[sub] || !known[sup] {
			return nil, fmt.Errorf("arista %s → %s: usuario desconocido", e.SubordinateID, e.SuperiorID)
		}
		store.AddEdge(sub, sup)
	}
	return store, nil
}

package entity

import "time"

// HierarchyEdge una fila por relación de reporte directo (subordinado → superior).
// Un subordinado tiene como máximo un superior directo.
type HierarchyEdge struct {
	ID            string
	SubordinateID string
	SuperiorID    string
	CreatedAt     time.Time
}

// HierarchyEdgeView arista con nombres y roles para volcados administrativos.
type HierarchyEdgeView struct {
	HierarchyEdge
	SubordinateName string
	SubordinateRole Role
	SuperiorName    string
	SuperiorRole    Role
}

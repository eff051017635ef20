package dto

import "time"

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Funcional string    `json:"funcional"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListQuery filtro del listado de usuarios. Q busca por nombre o funcional sin acentos.
type UserListQuery struct {
	Q    string `query:"q" validate:"omitempty,max=100"`
	Role string `query:"role" validate:"omitempty,oneof=supervisor coordenador gerente admin"`
}

// TeamMemberResponse subordinado del cierre jerárquico del usuario.
type TeamMemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Funcional string `json:"funcional"`
	Role      string `json:"role"`
	// Level 1 = subordinado directo, 2 = segundo nivel. 0 para la vista de admin.
	Level int `json:"level"`
}

// LoginRequest entrada para login por matrícula.
type LoginRequest struct {
	Funcional string `json:"funcional" validate:"required,min=1,max=20"`
	Password  string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// ValidateResponse identidad contenida en un token vigente.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
	"github.com/MrJamesThe3rd/rentbook/internal/http/httpx"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type Handler struct {
	svc    *rental.Service
	tokens *auth.TokenService
}

func NewHandler(svc *rental.Service, tokens *auth.TokenService) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// PublicRoutes registers the endpoints that work without a token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
}

// UserRoutes registers account management for admins.
func (h *Handler) UserRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Get("/{id}", h.getUser)
	r.Patch("/{id}", h.updateUser)
}

type userResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  rental.Role `json:"role"`
}

func toUserResponse(u *rental.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     rental.Role `json:"role"`
}

func (req registerRequest) params() rental.UserParams {
	return rental.UserParams{Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.Register(r.Context(), req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	token, err := h.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(&actor))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	var role *rental.Role

	if s := r.URL.Query().Get("role"); s != "" {
		role = new(rental.Role(s))
	}

	users, err := h.svc.Users(r.Context(), role)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	var req registerRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.CreateUser(r.Context(), actor, req.params())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.svc.User(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(u))
}

type updateUserRequest struct {
	Name  *string      `json:"name,omitempty"`
	Email *string      `json:"email,omitempty"`
	Role  *rental.Role `json:"role,omitempty"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r)
	if !ok {
		return
	}

	id, ok := httpx.ID(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), actor, id, rental.UpdateUserParams{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(u))
}

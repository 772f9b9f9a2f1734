package handlers

import (
	"net/http"

	"cbmadmin/config"
	"cbmadmin/database"
	"cbmadmin/middleware"
	"cbmadmin/models"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais invalidas"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais invalidas"})
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gerar token"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, middleware.GetUserFromContext(r.Context()))
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "senha atual incorreta"})
		return
	}
	if len(req.NewPassword) < 5 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "senha deve ter pelo menos 5 caracteres"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar senha"})
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao gravar senha"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateUser provisions an operator account. Admin only; the new account
// must change its password on first login.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string      `json:"username"`
		FullName string      `json:"full_name"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "corpo invalido"})
		return
	}
	if len(req.Username) < 3 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "username deve ter pelo menos 3 caracteres"})
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleOperador {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "role invalida"})
		return
	}
	if len(req.Password) < 5 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "senha deve ter pelo menos 5 caracteres"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao criar conta"})
		return
	}

	user := models.User{
		Username:           req.Username,
		FullName:           req.FullName,
		PasswordHash:       string(hashedPassword),
		Role:               req.Role,
		MustChangePassword: true,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		respondJSON(w, http.StatusConflict, map[string]string{"error": "username ja existe"})
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	database.GetDB().Order("username asc").Find(&users)
	respondJSON(w, http.StatusOK, users)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id invalido"})
		return
	}
	me := middleware.GetUserFromContext(r.Context())
	if me.ID == id {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "nao e possivel excluir a propria conta"})
		return
	}
	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "usuario nao encontrado"})
		return
	}
	database.GetDB().Delete(&user)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

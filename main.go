package main

import (
	"log"
	"net/http"

	"cbmadmin/config"
	"cbmadmin/database"
	"cbmadmin/espelho"
	"cbmadmin/handlers"
	"cbmadmin/middleware"
	"cbmadmin/models"
	"cbmadmin/roster"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store := roster.NewStore(database.GetDB(), roster.DefaultMultiHolderFunctions)

	// Initialize handlers. The espelho taxonomy is validated here so a
	// duplicate column fails at startup, not per request.
	authHandler := handlers.NewAuthHandler(cfg)
	plantaoHandler := handlers.NewPlantaoHandler(store)
	servicoHandler := handlers.NewServicoHandler(store)
	codecHandler := handlers.NewCodecHandler(store)
	escalaHandler := handlers.NewEscalaAeronaveHandler(store)
	cadastroHandler := handlers.NewCadastroHandler(store)
	espelhoHandler, err := handlers.NewEspelhoHandler(espelho.DefaultColumns())
	if err != nil {
		log.Fatalf("Invalid espelho taxonomy: %v", err)
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/api/logout", authHandler.Logout)
		r.Get("/api/me", authHandler.Me)
		r.Post("/api/change-password", authHandler.ChangePassword)

		// Roster
		r.Get("/api/plantoes", plantaoHandler.List)
		r.Post("/api/plantoes", plantaoHandler.Create)
		r.Put("/api/plantoes/{id}", plantaoHandler.Update)
		r.Delete("/api/plantoes/{id}", plantaoHandler.Delete)
		r.Post("/api/plantoes/{id}/guarnicao", plantaoHandler.AssignGuarnicao)
		r.Delete("/api/guarnicao/{id}", plantaoHandler.RemoveGuarnicao)

		r.Get("/api/servico-dia", servicoHandler.List)
		r.Post("/api/servico-dia", servicoHandler.Upsert)
		r.Delete("/api/servico-dia/{id}", servicoHandler.Delete)

		r.Get("/api/codec", codecHandler.List)
		r.Post("/api/codec", codecHandler.Assign)
		r.Delete("/api/codec/{id}", codecHandler.Remove)

		r.Get("/api/escalas-aeronave", escalaHandler.List)
		r.Post("/api/escalas-aeronave", escalaHandler.Create)
		r.Put("/api/escalas-aeronave/{id}", escalaHandler.Update)
		r.Delete("/api/escalas-aeronave/{id}", escalaHandler.Delete)

		// Registry reads and incident input
		r.Get("/api/militares", cadastroHandler.ListMilitares)
		r.Get("/api/civis", cadastroHandler.ListCivis)
		r.Get("/api/viaturas", cadastroHandler.ListViaturas)
		r.Get("/api/obms", cadastroHandler.ListOBMs)
		r.Get("/api/aeronaves", cadastroHandler.ListAeronaves)
		r.Get("/api/telefones", cadastroHandler.ListTelefones)
		r.Get("/api/naturezas", cadastroHandler.ListNaturezas)
		r.Get("/api/ocorrencias", cadastroHandler.ListOcorrencias)
		r.Post("/api/ocorrencias", cadastroHandler.CreateOcorrencia)

		// Dashboard
		r.Get("/api/espelho", espelhoHandler.Matrix)
		r.Get("/api/espelho/csv", espelhoHandler.ExportCSV)

		// Admin only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Get("/api/users", authHandler.ListUsers)
			r.Post("/api/users", authHandler.CreateUser)
			r.Delete("/api/users/{id}", authHandler.DeleteUser)

			r.Post("/api/militares", cadastroHandler.CreateMilitar)
			r.Delete("/api/militares/{id}", cadastroHandler.DeleteMilitar)
			r.Post("/api/civis", cadastroHandler.CreateCivil)
			r.Delete("/api/civis/{id}", cadastroHandler.DeleteCivil)
			r.Post("/api/viaturas", cadastroHandler.CreateViatura)
			r.Delete("/api/viaturas/{id}", cadastroHandler.DeleteViatura)
			r.Post("/api/obms", cadastroHandler.CreateOBM)
			r.Post("/api/aeronaves", cadastroHandler.CreateAeronave)
			r.Post("/api/telefones", cadastroHandler.CreateTelefone)
			r.Post("/api/naturezas", cadastroHandler.CreateNatureza)
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}

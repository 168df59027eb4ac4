package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ryabov/momentum/internal/service"
)

type Server struct {
	mx             *chi.Mux
	userService    service.UserServiceI
	actionsService service.ActionsServiceI
	recordsService service.RecordsServiceI
	jwtService     JWTServiceI
}

type ServicesList struct {
	UserService    service.UserServiceI
	ActionsService service.ActionsServiceI
	RecordsService service.RecordsServiceI
	JwtService     JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:             chi.NewMux(),
		userService:    servicesOptions.UserService,
		actionsService: servicesOptions.ActionsService,
		recordsService: servicesOptions.RecordsService,
		jwtService:     servicesOptions.JwtService,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, s.CORSMiddleware)

	s.mx.Route("/user", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/token-login", s.TokenLogin)
			r.Put("/change-info", s.ChangeInfo)
			r.Put("/change-password", s.ChangePassword)
		})
	})

	s.mx.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
		r.Route("/action", func(r chi.Router) {
			r.Get("/", s.GetActions)
			r.Post("/", s.CreateAction)
			r.Put("/", s.UpdateAction)
			r.Delete("/", s.DeleteActions)
		})
		r.Route("/action-record", func(r chi.Router) {
			r.Get("/", s.GetRecords)
			r.Post("/", s.ApplyProgress)
			r.Put("/", s.UpdateRecord)
			r.Delete("/", s.DeleteRecords)
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

func (s *Server) Run(addr string) error {
	log.Println("Server listening on " + addr)
	return http.ListenAndServe(addr, s.mx)
}

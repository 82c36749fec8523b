package handler

import (
	"net/http"

	"lending/core"
	"lending/handler/auth"
	"lending/handler/render"
	"lending/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg          *core.Config
	session      core.Session
	banks        core.IBankStore
	transactions core.TransactionStore
	ledgerz      core.ILedgerService
}

// New new server function
func New(
	cfg *core.Config,
	session core.Session,
	banks core.IBankStore,
	transactions core.TransactionStore,
	ledgerz core.ILedgerService,
) Server {
	return Server{
		cfg:          cfg,
		session:      session,
		banks:        banks,
		transactions: transactions,
		ledgerz:      ledgerz,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.HandleAuthentication(s.session))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Post("/oauth", auth.HandleOauth(&s.cfg.Dapp))
	r.Mount("/", rest.Handle(s.banks, s.transactions, s.ledgerz))

	return r
}

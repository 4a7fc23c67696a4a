package command

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli"

	"github.com/arcanedice/dice/math"
)

// rollHandler evaluates the dice/math expression named by the "roll" path
// variable and writes its ExpressionResult as JSON.
func rollHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exp, err := math.EvaluateExpression(r.Context(), vars["roll"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, exp)
}

// rollPostHandler is rollHandler but reads the expression from a JSON body
// of the form {"roll": "<expression>"}.
func rollPostHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Roll string `json:"roll"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exp, err := math.EvaluateExpression(r.Context(), body.Roll)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, exp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	x, err := toJSON(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(x))
}

// ServerCommand starts a minimal ad hoc HTTP server exposing the CLI's
// roll/eval behavior over a couple of routes. The dedicated server package
// is the fuller-featured HTTP service (structured logging, a /v1 API
// prefix); this command is the quick one-liner entry point for the CLI.
func ServerCommand(c *cli.Context) error {
	r := mux.NewRouter()

	r.HandleFunc("/roll/{roll}", rollHandler).Methods("GET")
	r.HandleFunc("/roll", rollPostHandler).Methods("POST")

	srv := &http.Server{
		Addr:         c.String("http"),
		WriteTimeout: time.Second * 10,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Second * 10,
		Handler:      r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	// SIGINT (Ctrl+C) triggers a graceful shutdown; SIGKILL/SIGQUIT don't.
	signal.Notify(sig, os.Interrupt)

	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	srv.Shutdown(ctx)

	log.Println("shutting down")
	return nil
}

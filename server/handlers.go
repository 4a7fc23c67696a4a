package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/arcanedice/dice/math"
)

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	response, _ := json.Marshal(data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, err string) {
	respondWithJSON(w, code, map[string]string{
		"error": err,
	})
}

// EvalDiceNotationString evaluates a composed dice/math expression and
// returns its ExpressionResult. The expression's own grammar does the
// validation; there is no separate pre-validation regex since the grammar
// supports groups and modifiers a fixed-form regex can't describe.
func EvalDiceNotationString(s string) (*math.ExpressionResult, error) {
	return math.EvaluateExpression(context.Background(), s)
}

func HandleResponse(w http.ResponseWriter, jsonString string) {
	var f map[string]interface{}
	err := json.Unmarshal([]byte(jsonString), &f)
	if err != nil {
		log.Error().Err(err).Msg("json error")
	}
	respondWithJSON(w, http.StatusOK, jsonString)
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "not found")
}

func RollHandler(w http.ResponseWriter, r *http.Request) {
	// Grab the dice notation string from the request URI
	roll := mux.Vars(r)["roll"]

	result, err := EvalDiceNotationString(roll)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// RootHandler handles requests to the base server. This should be replaced with
// an API description or static HTML page.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"prompt": "You approach the server.",
	})
}

// ToolsRandomHandler returns a random integer from math/rand, for basic
// liveness checks unrelated to dice evaluation (the dice package's own
// crypto-seeded source is never exposed raw over HTTP).
func ToolsRandomHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"result": rand.Int(),
	})
}

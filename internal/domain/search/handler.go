package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"lost-found-search/internal/contracts"
	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/ports/geocoding"
	"lost-found-search/internal/ports/geolocation"
)

const maxBodyBytes = 64 << 10

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(svc))
		sr.Post("/refresh", refreshAllHandler(svc))

		sr.Route("/{sessionID}", func(s chi.Router) {
			s.Get("/", getSessionHandler(svc))
			s.Delete("/", closeSessionHandler(svc))
			s.Post("/refresh", refreshSessionHandler(svc))

			s.Patch("/filters", setFilterHandler(svc))
			s.Post("/filters/reset", resetFiltersHandler(svc))

			s.Post("/location/current", useCurrentLocationHandler(svc))
			s.Delete("/location", clearLocationHandler(svc))
			s.Delete("/location/error", dismissGeolocationErrorHandler(svc))
			s.Post("/position", reportPositionHandler(svc))

			s.Post("/address-query", addressQueryHandler(svc))
			s.Get("/address-suggestions", addressSuggestionsHandler(svc))
			s.Post("/address-select", addressSelectHandler(svc))

			s.Post("/match-counts", fillMatchCountsHandler(svc))
			s.Get("/match-counts", getMatchCountsHandler(svc))
			s.Get("/match-counts/stream", streamMatchCountsHandler(svc))
		})
	})

	r.Get("/animals/{animalID}/matches", potentialMatchesHandler(svc))
	r.Post("/matches/score", scoreCandidatesHandler(svc))
}

type createSessionRequest struct {
	Kind string `json:"kind"` // LOST | FOUND
}

type setFilterRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type addressQueryRequest struct {
	Q string `json:"q"`
}

type addressSelectRequest struct {
	Place geocoding.Place `json:"place"`
}

// Fix opcional enviado junto con el pedido de ubicación actual.
type currentLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
}

type positionReportRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
	Timestamp string   `json:"timestamp"` // RFC3339 opcional
	ErrorCode int      `json:"error_code"`
	Message   string   `json:"message"`
}

type scoreRequest struct {
	Animal     animalResponse `json:"animal"`
	Direction  string         `json:"direction"`
	MaxResults int            `json:"max_results"`
}

type refreshAllResponse struct {
	Refreshed int `json:"refreshed"`
}

type geolocationErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// createSessionHandler godoc
// @Summary Abrir una sesión de búsqueda
// @Description Crea el estado de una vista (perdidos o encontrados) con filtros por defecto y carga la lista.
// @Tags sessions
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token reenviado a la API de animales"
// @Param payload body createSessionRequest true "kind: LOST o FOUND"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "invalid json / kind inválido"
// @Router /sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, err := svc.Create(r.Context(), animals.Status(req.Kind))
		if err != nil {
			writeError(w, err)
			return
		}

		// Montar la vista = cargar la lista.
		st.FetchList(r.Context())

		writeJSON(w, http.StatusCreated, toSessionResponse(st.Snapshot()))
	}
}

// getSessionHandler godoc
// @Summary Estado de una sesión
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [get]
func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(st.Snapshot()))
	}
}

// closeSessionHandler godoc
// @Summary Cerrar una sesión
// @Description Cancela lo que esté en curso (conteos, geolocalización, autocompletado) y borra la sesión.
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func closeSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// refreshSessionHandler godoc
// @Summary Refrescar la lista de una sesión
// @Description Vuelve a pedir la lista; invalida el cache de conteos. Un error remoto deja la lista vacía con status errored.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/refresh [post]
func refreshSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		st.FetchList(r.Context())
		writeJSON(w, http.StatusOK, toSessionResponse(st.Snapshot()))
	}
}

// refreshAllHandler godoc
// @Summary Refrescar todas las sesiones abiertas
// @Tags sessions
// @Produce json
// @Success 200 {object} refreshAllResponse
// @Router /sessions/refresh [post]
func refreshAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.RefreshAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, refreshAllResponse{Refreshed: n})
	}
}

// setFilterHandler godoc
// @Summary Cambiar un filtro
// @Description Aplica un cambio de campo. postalCode no vacío limpia la ubicación; una coordenada limpia postalCode.
// @Tags filters
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body setFilterRequest true "field (breed, color, eyeColor, postalCode, location.*) y value (string, número o null)"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "payload inválido / filtro inválido"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/filters [patch]
func setFilterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}

		body, ok := readValidated(w, r, contracts.FilterUpdate)
		if !ok {
			return
		}

		var req setFilterRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		value, err := filterValue(req.Value)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, err := st.SetFilter(Field(req.Field), value); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(st.Snapshot()))
	}
}

// resetFiltersHandler godoc
// @Summary Restablecer filtros
// @Tags filters
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/filters/reset [post]
func resetFiltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		st.ResetFilters()
		writeJSON(w, http.StatusOK, toSessionResponse(st.Snapshot()))
	}
}

// useCurrentLocationHandler godoc
// @Summary Usar la ubicación actual
// @Description Espera una posición del dispositivo (puede venir en el mismo body), la resuelve a una dirección y la aplica como filtro. Si no hay dirección se usa "Position actuelle".
// @Tags location
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body currentLocationRequest false "Fix opcional del dispositivo (latitude y longitude juntos)"
// @Success 200 {object} locationResponse
// @Failure 400 {string} string "fix incompleto o fuera de rango"
// @Failure 404 {string} string "session not found"
// @Failure 422 {object} geolocationErrorResponse
// @Router /sessions/{sessionID}/location/current [post]
func useCurrentLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			// Un fix a medias (solo latitude o solo longitude) lo rechaza el contrato.
			if err := contracts.Validate(contracts.CurrentLocation, contracts.Version1, body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			var req currentLocationRequest
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			if req.Latitude != nil && req.Longitude != nil {
				if err := svc.ReportPosition(r.Context(), st.ID(), geolocation.Position{
					Latitude:  *req.Latitude,
					Longitude: *req.Longitude,
					Accuracy:  req.Accuracy,
				}); err != nil {
					writeError(w, err)
					return
				}
			}
		}

		info, err := st.UseCurrentLocation(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, locationResponse{
			Location: info,
			Session:  toSessionResponse(st.Snapshot()),
		})
	}
}

// clearLocationHandler godoc
// @Summary Quitar el filtro de ubicación
// @Tags location
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} sessionResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/location [delete]
func clearLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		st.ClearCurrentLocation()
		writeJSON(w, http.StatusOK, toSessionResponse(st.Snapshot()))
	}
}

// dismissGeolocationErrorHandler godoc
// @Summary Descartar el mensaje de error de geolocalización
// @Tags location
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Router /sessions/{sessionID}/location/error [delete]
func dismissGeolocationErrorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		st.DismissGeolocationError()
		w.WriteHeader(http.StatusNoContent)
	}
}

// reportPositionHandler godoc
// @Summary Reportar posición del dispositivo
// @Description El dispositivo envía un fix (latitude/longitude) o un error (error_code 1 permiso, 2 no disponible, 3 timeout).
// @Tags location
// @Accept json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body positionReportRequest true "Fix o error"
// @Success 202
// @Failure 400 {string} string "payload inválido"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/position [post]
func reportPositionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")

		body, ok := readValidated(w, r, contracts.PositionReport)
		if !ok {
			return
		}
		var req positionReportRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var err error
		if req.ErrorCode != 0 {
			err = svc.ReportPositionError(r.Context(), id, geolocation.Code(req.ErrorCode), req.Message)
		} else {
			var ts time.Time
			if req.Timestamp != "" {
				ts, err = time.Parse(time.RFC3339, req.Timestamp)
				if err != nil {
					http.Error(w, "timestamp must be RFC3339", http.StatusBadRequest)
					return
				}
			}
			err = svc.ReportPosition(r.Context(), id, geolocation.Position{
				Latitude:  *req.Latitude,
				Longitude: *req.Longitude,
				Accuracy:  req.Accuracy,
				Timestamp: ts,
			})
		}
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// addressQueryHandler godoc
// @Summary Autocompletar dirección
// @Description Registra lo que el usuario escribió. Solo la última consulta de una ráfaga (300 ms) va al geocoder.
// @Tags location
// @Accept json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body addressQueryRequest true "Texto escrito"
// @Success 202
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/address-query [post]
func addressQueryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		var req addressQueryRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		st.QueryAddress(req.Q)
		w.WriteHeader(http.StatusAccepted)
	}
}

// addressSuggestionsHandler godoc
// @Summary Sugerencias de dirección
// @Tags location
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {array} geocoding.Place
// @Router /sessions/{sessionID}/address-suggestions [get]
func addressSuggestionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, st.Suggestions())
	}
}

// addressSelectHandler godoc
// @Summary Elegir una dirección sugerida
// @Description Aplica la dirección como filtro de ubicación (coordenadas + dirección) y limpia postalCode.
// @Tags location
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body addressSelectRequest true "Lugar elegido"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "payload inválido"
// @Router /sessions/{sessionID}/address-select [post]
func addressSelectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		body, ok := readValidated(w, r, contracts.AddressSelect)
		if !ok {
			return
		}
		var req addressSelectRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		st.SelectPlace(req.Place)
		writeJSON(w, http.StatusOK, toSessionResponse(st.Snapshot()))
	}
}

// fillMatchCountsHandler godoc
// @Summary Calcular cantidad de coincidencias de la lista filtrada
// @Description Arranca en segundo plano. Los ids se piden de a uno; el progreso se ve en /match-counts o /match-counts/stream.
// @Tags matches
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 202 {object} CountsSnapshot
// @Router /sessions/{sessionID}/match-counts [post]
func fillMatchCountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}

		// La pasada sobrevive al request; se corta al cerrar la sesión.
		go st.FillMatchCounts(context.WithoutCancel(r.Context()))

		writeJSON(w, http.StatusAccepted, st.Snapshot().Counts)
	}
}

// getMatchCountsHandler godoc
// @Summary Conteos de coincidencias
// @Tags matches
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} CountsSnapshot
// @Router /sessions/{sessionID}/match-counts [get]
func getMatchCountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, st.Snapshot().Counts)
	}
}

// streamMatchCountsHandler godoc
// @Summary Progreso de conteos (SSE)
// @Description Emite un evento `counts` por cada id resuelto. Termina al cerrar la sesión.
// @Tags matches
// @Produce text/event-stream
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {string} string "event stream"
// @Router /sessions/{sessionID}/match-counts/stream [get]
func streamMatchCountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := loadStore(w, r, svc)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		updates, unsubscribe := st.SubscribeCounts()
		defer unsubscribe()

		for {
			select {
			case <-r.Context().Done():
				return
			case snap, open := <-updates:
				if !open {
					return
				}
				payload, err := json.Marshal(snap)
				if err != nil {
					return
				}
				if _, err := fmt.Fprintf(w, "event: counts\ndata: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

// potentialMatchesHandler godoc
// @Summary Coincidencias potenciales de un animal
// @Description Pasa directo al servicio de matching. Ante error remoto devuelve una lista vacía.
// @Tags matches
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param direction query string false "lost_to_found (default) o found_to_lost"
// @Success 200 {array} matchCandidateResponse
// @Failure 400 {string} string "direction inválida"
// @Router /animals/{animalID}/matches [get]
func potentialMatchesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := animals.DirectionLostToFound
		if v := strings.TrimSpace(r.URL.Query().Get("direction")); v != "" {
			d, ok := animals.ParseDirection(v)
			if !ok {
				http.Error(w, "direction must be lost_to_found or found_to_lost", http.StatusBadRequest)
				return
			}
			dir = d
		}

		out := svc.FindPotentialMatches(r.Context(), chi.URLParam(r, "animalID"), dir)
		writeJSON(w, http.StatusOK, toMatchCandidatesResponse(out))
	}
}

// scoreCandidatesHandler godoc
// @Summary Puntuar un animal contra el pool opuesto
// @Tags matches
// @Accept json
// @Produce json
// @Param payload body scoreRequest true "Animal, dirección y máximo de resultados (1-50, default 10)"
// @Success 200 {array} matchCandidateResponse
// @Failure 400 {string} string "payload inválido"
// @Failure 502 {string} string "upstream error"
// @Router /matches/score [post]
func scoreCandidatesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readValidated(w, r, contracts.ScoreRequest)
		if !ok {
			return
		}
		var req scoreRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		target := animals.Animal{
			ID:       req.Animal.ID,
			Name:     req.Animal.Name,
			Breed:    req.Animal.Breed,
			Color:    req.Animal.Color,
			EyeColor: req.Animal.EyeColor,
			FurType:  req.Animal.FurType,
			Gender:   req.Animal.Gender,
		}

		out, err := svc.ScoreCandidates(r.Context(), target, animals.Direction(req.Direction), req.MaxResults)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, err)
				return
			}
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, toMatchCandidatesResponse(out))
	}
}

func loadStore(w http.ResponseWriter, r *http.Request, svc *Service) (*Store, bool) {
	st, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return st, true
}

func readValidated(w http.ResponseWriter, r *http.Request, contract string) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return nil, false
	}
	if err := contracts.Validate(contract, contracts.Version1, body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

// filterValue acepta string, número o null.
func filterValue(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", ErrInvalidFilter
		}
		return v, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", ErrInvalidFilter
	}
	return strconv.FormatFloat(n, 'f', -1, 64), nil
}

func writeError(w http.ResponseWriter, err error) {
	var geoErr *geolocation.Error
	var upstream *geocoding.Error

	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidFilter), errors.Is(err, contracts.ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &geoErr):
		writeJSON(w, http.StatusUnprocessableEntity, geolocationErrorResponse{
			Code:    geoErr.Code.String(),
			Message: messageFor(geoErr.Code),
		})
	case errors.As(err, &upstream), errors.Is(err, animals.ErrNoCatalog):
		http.Error(w, "upstream error", http.StatusBadGateway)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

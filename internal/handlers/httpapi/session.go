package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/geodraw/internal/models"
	sessionSvc "github.com/KirkDiggler/geodraw/internal/services/session"
)

// Session actions a client can post, dispatched as tagged variants rather
// than presence-checked optional fields
const (
	actionJoin             = "join"
	actionSetReady         = "setReady"
	actionLeave            = "leave"
	actionSetTemplate      = "setTemplate"
	actionSetDefaultCenter = "setDefaultCenter"
)

type sessionView struct {
	SessionID     string                 `json:"sessionId"`
	Creator       string                 `json:"creator"`
	Members       []string               `json:"members"`
	Readiness     map[string]bool        `json:"readiness"`
	Active        bool                   `json:"active"`
	CurrentGameID string                 `json:"currentGameId,omitempty"`
	Roles         map[string]models.Role `json:"roles,omitempty"`
	Painter       string                 `json:"painter,omitempty"`
	ShapeConfig   *models.ShapeConfig    `json:"shapeConfig,omitempty"`
	DefaultCenter *models.GeoPoint       `json:"defaultCenter,omitempty"`
}

func viewOf(s *models.Session) sessionView {
	return sessionView{
		SessionID:     s.ID,
		Creator:       s.Creator,
		Members:       s.Members,
		Readiness:     s.Readiness,
		Active:        s.Active,
		CurrentGameID: s.CurrentGameID,
		Roles:         s.Roles,
		Painter:       s.Painter,
		ShapeConfig:   s.ShapeConfig,
		DefaultCenter: s.DefaultCenter,
	}
}

func handleCreateSession(svc sessionSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(usernameHeader)
		if username == "" {
			writeError(w, http.StatusBadRequest, "missing X-Username header")
			return
		}

		out, err := svc.CreateSession(r.Context(), &sessionSvc.CreateSessionInput{
			Creator: username,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"sessionId": out.SessionID})
	}
}

func handleGetSession(svc sessionSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.GetSession(r.Context(), &sessionSvc.GetSessionInput{
			SessionID: chi.URLParam(r, "sessionID"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, viewOf(out.Session))
	}
}

func handleListTemplates(svc sessionSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListTemplates(r.Context(), &sessionSvc.ListTemplatesInput{})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, out.Templates)
	}
}

type shapeRequest struct {
	TemplateID   string            `json:"templateId"`
	Center       *models.GeoPoint  `json:"center,omitempty"`
	RadiusMeters float64           `json:"radiusMeters"`
	ZoomLevel    float64           `json:"zoomLevel,omitempty"`
	Vertices     []models.GeoPoint `json:"vertices,omitempty"`
}

type sessionActionRequest struct {
	Action    string `json:"action"`
	SessionID string `json:"sessionId,omitempty"`
	// Creator resolves the session when the caller only knows the admin
	Creator string `json:"creator,omitempty"`

	// setReady
	Ready *bool `json:"ready,omitempty"`

	// setTemplate
	Shape *shapeRequest `json:"shape,omitempty"`

	// setDefaultCenter
	Center *models.GeoPoint `json:"center,omitempty"`
}

func handleSessionAction(svc sessionSvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(usernameHeader)
		if username == "" {
			writeError(w, http.StatusBadRequest, "missing X-Username header")
			return
		}

		var req sessionActionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		switch req.Action {
		case actionJoin:
			out, err := svc.Join(r.Context(), &sessionSvc.JoinInput{
				SessionID: req.SessionID,
				Creator:   req.Creator,
				Username:  username,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, viewOf(out.Session))

		case actionSetReady:
			ready := true
			if req.Ready != nil {
				ready = *req.Ready
			}
			out, err := svc.SetReady(r.Context(), &sessionSvc.SetReadyInput{
				SessionID: req.SessionID,
				Creator:   req.Creator,
				Username:  username,
				Ready:     ready,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, viewOf(out.Session))

		case actionLeave:
			out, err := svc.Leave(r.Context(), &sessionSvc.LeaveInput{
				SessionID: req.SessionID,
				Creator:   req.Creator,
				Username:  username,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if out.Deleted {
				writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
				return
			}
			writeJSON(w, http.StatusOK, viewOf(out.Session))

		case actionSetTemplate:
			if req.Shape == nil {
				writeError(w, http.StatusBadRequest, "shape is required for setTemplate")
				return
			}
			out, err := svc.ConfigureShape(r.Context(), &sessionSvc.ConfigureShapeInput{
				SessionID:    req.SessionID,
				Creator:      req.Creator,
				Username:     username,
				TemplateID:   req.Shape.TemplateID,
				Center:       req.Shape.Center,
				RadiusMeters: req.Shape.RadiusMeters,
				ZoomLevel:    req.Shape.ZoomLevel,
				Vertices:     req.Shape.Vertices,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, out.ShapeConfig)

		case actionSetDefaultCenter:
			if req.Center == nil {
				writeError(w, http.StatusBadRequest, "center is required for setDefaultCenter")
				return
			}
			_, err := svc.ConfigureDefaultCenter(r.Context(), &sessionSvc.ConfigureDefaultCenterInput{
				SessionID: req.SessionID,
				Creator:   req.Creator,
				Username:  username,
				Center:    *req.Center,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})

		default:
			writeError(w, http.StatusBadRequest, "unknown action")
		}
	}
}

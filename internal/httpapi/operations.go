package httpapi

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/geom"
)

// Read-only endpoints are registered through huma so they appear in the
// generated OpenAPI document at /openapi.json.

type statusOutput struct {
	Body struct {
		Booting      bool      `json:"booting" doc:"True until the first viewport is applied"`
		Viewport     geom.Size `json:"viewport"`
		WindowCount  int       `json:"window_count"`
		ActiveID     string    `json:"active_id,omitempty"`
		Running      []string  `json:"running" doc:"Applications with open windows"`
		Revision     uint64    `json:"revision" doc:"Number of state transitions so far"`
		Interactions int       `json:"interactions" doc:"Drags and resizes in progress"`
	}
}

type appsOutput struct {
	Body struct {
		Applications []apps.Descriptor `json:"applications"`
	}
}

type appOutput struct {
	Body apps.Descriptor
}

type appInput struct {
	ID string `path:"id" doc:"Application id"`
}

func (s *Server) registerOperations(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Session status",
		Tags:        []string{"session"},
	}, func(ctx context.Context, _ *struct{}) (*statusOutput, error) {
		st := s.session.State()
		out := &statusOutput{}
		out.Body.Booting = st.Booting
		out.Body.Viewport = st.Viewport
		out.Body.WindowCount = len(st.Windows)
		out.Body.ActiveID = st.ActiveID
		out.Body.Running = st.RunningApplicationIDs()
		out.Body.Revision = s.session.Revision()
		out.Body.Interactions = s.controller.ActiveInteractions()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-apps",
		Method:      http.MethodGet,
		Path:        "/apps",
		Summary:     "List the application catalog",
		Tags:        []string{"apps"},
	}, func(ctx context.Context, _ *struct{}) (*appsOutput, error) {
		out := &appsOutput{}
		out.Body.Applications = s.session.Applications()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-app",
		Method:      http.MethodGet,
		Path:        "/apps/{id}",
		Summary:     "Get one application",
		Tags:        []string{"apps"},
	}, func(ctx context.Context, in *appInput) (*appOutput, error) {
		d, ok := s.session.Application(in.ID)
		if !ok {
			return nil, huma.Error404NotFound("unknown application " + in.ID)
		}
		return &appOutput{Body: d}, nil
	})
}

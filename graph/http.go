package graph

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/tryfix/ktopology/topology"
	"github.com/tryfix/log"
)

type Err struct {
	Err string `json:"error"`
}

type handler struct {
	builder *topology.Builder
	logger  log.Logger
}

func (h *handler) encodeError(w http.ResponseWriter, e error) {
	byt, err := json.Marshal(Err{Err: e.Error()})
	if err != nil {
		h.logger.Error(err)
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	if _, err := w.Write(byt); err != nil {
		h.logger.Error(err)
	}
}

// MakeEndpoints exposes the builder's node specifications, task groups
// and graph over http for debugging.
func MakeEndpoints(host string, builder *topology.Builder, logger log.Logger) {
	r := mux.NewRouter()
	h := &handler{
		builder: builder,
		logger:  logger,
	}

	r.HandleFunc(`/topology`, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(writer).Encode(h.builder.Describe()); err != nil {
			h.encodeError(writer, err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc(`/topology/groups`, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/plain")
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		if _, err := writer.Write([]byte(h.builder.DescribeGroups())); err != nil {
			h.logger.Error(err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc(`/topology/copartitions`, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(writer).Encode(h.builder.CopartitionGroups()); err != nil {
			h.encodeError(writer, err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc(`/topology/graph`, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/vnd.graphviz")
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		g := NewGraph()
		g.RenderTopology(h.builder)
		if _, err := writer.Write([]byte(g.Build())); err != nil {
			h.logger.Error(err)
		}
	}).Methods(http.MethodGet)

	go func() {
		if err := http.ListenAndServe(host, handlers.CORS()(r)); err != nil {
			logger.Error(fmt.Sprintf(`cannot start web server : %+v`, err))
		}
	}()

	logger.Info(fmt.Sprintf(`http server started on %s`, host))
}

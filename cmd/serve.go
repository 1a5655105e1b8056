package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/lyricmidi/builder"
	"github.com/jsphweid/lyricmidi/config"
	"github.com/jsphweid/lyricmidi/constants"
	"github.com/jsphweid/lyricmidi/model"
	"github.com/jsphweid/lyricmidi/note"
	"github.com/jsphweid/lyricmidi/pipeline"
	"github.com/jsphweid/lyricmidi/segment"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	v.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves MIDI conversion over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.WithField("addr", conf.Serve.Addr).Info("listening")
		return http.ListenAndServe(conf.Serve.Addr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/healthz", handleHealth).Methods("GET")
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/segment", HandleSegment).Methods("POST")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// requestConfig applies per request overrides on top of the loaded config.
func requestConfig(body model.ConvertRequestBody) (*config.Config, error) {
	c := *conf
	if body.BPM != 0 {
		c.MIDI.BPM = body.BPM
	}
	if body.TicksPerBeat != 0 {
		c.MIDI.TicksPerBeat = body.TicksPerBeat
	}
	if body.Aggregation != "" {
		c.Build.Aggregation = body.Aggregation
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	var input model.ConvertRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return
	}
	c, err := requestConfig(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	track := model.PitchTrack{Step: constants.SampleStep, Samples: input.Pitch}
	var buf bytes.Buffer
	res, err := pipeline.Convert(input.Spans, track, c, log, &buf)
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("X-Skipped-Words", strconv.Itoa(len(res.Skipped)))
	w.Write(buf.Bytes())
}

func HandleSegment(w http.ResponseWriter, r *http.Request) {
	var input model.SegmentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return
	}
	opts := conf.SegmentOptions()
	if input.MaxClusters != 0 {
		opts.MaxClusters = input.MaxClusters
	}

	res, err := segment.FindClusters(input.Series, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func isInputError(err error) bool {
	return errors.Is(err, builder.ErrInvalidSpan) ||
		errors.Is(err, builder.ErrNegativeDelta) ||
		errors.Is(err, note.ErrInvalidInput)
}

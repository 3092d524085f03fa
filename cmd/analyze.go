package main

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/amakhet/soil-api/internal/api"
	"github.com/amakhet/soil-api/internal/model"
)

var (
	analyzeLat       float64
	analyzeLon       float64
	analyzeBuffer    int
	analyzeStart     string
	analyzeEnd       string
	analyzeSimulated bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one location and print the report",
	Long:  "Runs a single soil analysis and prints the same JSON envelope the HTTP API returns. Start and end default to the trailing analysis window.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initProvider(cmd.Context(), *cfg, analyzeSimulated)
		if err != nil {
			return err
		}

		req := analyzeRequest(time.Now().UTC())
		loc, err := req.Location(cfg.Analysis.DefaultBufferMeters)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		h := api.New(env.Provider, api.WithMetrics(env.Metrics, env.Registry))
		resp, err := h.Analyze(cmd.Context(), loc)
		if err != nil {
			return eris.Wrap(err, "analysis failed")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

// analyzeRequest builds the request from flags, filling the window from now
// when --start or --end is omitted.
func analyzeRequest(now time.Time) api.AnalysisRequest {
	w := model.TrailingWindow(now, cfg.Analysis.DefaultWindowDays)
	req := api.AnalysisRequest{
		Latitude:  &analyzeLat,
		Longitude: &analyzeLon,
		StartDate: analyzeStart,
		EndDate:   analyzeEnd,
	}
	if req.StartDate == "" {
		req.StartDate = w.StartDate()
	}
	if req.EndDate == "" {
		req.EndDate = w.EndDate()
	}
	if analyzeBuffer > 0 {
		req.BufferMeters = &analyzeBuffer
	}
	return req
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeLat, "lat", 0, "latitude in decimal degrees")
	analyzeCmd.Flags().Float64Var(&analyzeLon, "lon", 0, "longitude in decimal degrees")
	analyzeCmd.Flags().IntVar(&analyzeBuffer, "buffer", 0, "buffer radius in meters (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "window start, YYYY-MM-DD")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "window end, YYYY-MM-DD")
	analyzeCmd.Flags().BoolVar(&analyzeSimulated, "simulated", false, "use simulated soil data regardless of provider.mode")
	_ = analyzeCmd.MarkFlagRequired("lat")
	_ = analyzeCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(analyzeCmd)
}

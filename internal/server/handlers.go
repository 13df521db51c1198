package server

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fx-valuation/internal/analysis"
	"fx-valuation/internal/metrics"
	"fx-valuation/internal/valuation"
)

type analysisRequest struct {
	Scenario   *analysis.Scenario `json:"scenario"`
	Weights    *valuation.Weights `json:"weights"`
	IncludeIFE *bool              `json:"include_ife"`
}

func (s *Server) handlePPP(c *gin.Context) {
	values, err := floatParams(c, "domestic_price", "foreign_price", "current_exchange_rate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := valuation.CalculatePPP(values[0], values[1], values[2])
	if err == nil && !finite(res.PPPImpliedRate, res.MisalignmentPercent) {
		err = analysis.ErrNotFinite
	}
	metrics.ObserveCalculation("ppp", err)
	if err != nil {
		writeCalcError(c, err)
		return
	}

	metrics.MisalignmentPercent.Observe(res.MisalignmentPercent)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleIFE(c *gin.Context) {
	values, err := floatParams(c, "domestic_interest", "foreign_interest")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := valuation.CalculateIFE(values[0], values[1])
	if err == nil && !finite(res.PredictedChangeExact, res.PredictedChangeApprox) {
		err = analysis.ErrNotFinite
	}
	metrics.ObserveCalculation("ife", err)
	if err != nil {
		writeCalcError(c, err)
		return
	}

	metrics.PredictedChangePercent.Observe(res.PredictedChangeExact)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleAnalysis(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scenario := s.opts.Scenario
	if req.Scenario != nil {
		scenario = *req.Scenario
	}
	weights := s.opts.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}
	includeIFE := s.opts.IncludeIFE
	if req.IncludeIFE != nil {
		includeIFE = *req.IncludeIFE
	}

	rep, err := analysis.New(weights, includeIFE, s.logger).Analyze(scenario)
	if err == nil && !rep.Finite() {
		err = analysis.ErrNotFinite
	}
	metrics.ObserveCalculation("analysis", err)
	if err != nil {
		writeCalcError(c, err)
		return
	}

	metrics.MisalignmentPercent.Observe(rep.PPP.MisalignmentPercent)
	if rep.IFE != nil {
		metrics.PredictedChangePercent.Observe(rep.IFE.PredictedChangeExact)
	}
	c.JSON(http.StatusOK, rep)
}

func floatParams(c *gin.Context, names ...string) ([]float64, error) {
	values := make([]float64, len(names))
	for i, name := range names {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			return nil, fmt.Errorf("missing query parameter %s", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q is not a number", name, raw)
		}
		if !finite(v) {
			return nil, fmt.Errorf("invalid %s: must be finite", name)
		}
		values[i] = v
	}
	return values, nil
}

func writeCalcError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, valuation.ErrDivisionByZero) || errors.Is(err, analysis.ErrNotFinite) {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

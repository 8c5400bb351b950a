// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package server exposes the classifier over HTTP for callers that want to
// keep one model connection warm instead of shelling out to the CLI per
// review.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/revlens/revlens/services/classifier"
)

var classificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "revlens_classifications_total",
		Help: "Completed review classifications by decision.",
	},
	[]string{"decision"},
)

var classificationErrors = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "revlens_classification_errors_total",
		Help: "Classification requests that failed at the model backend.",
	},
)

// Server wraps a gin engine around a constructed Classifier.
type Server struct {
	classifier *classifier.Classifier
	router     *gin.Engine
}

// New builds the HTTP server and registers its routes.
func New(c *classifier.Classifier) *Server {
	router := gin.Default()
	router.Use(otelgin.Middleware("revlens-server"))

	s := &Server{classifier: c, router: router}

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/classify", s.handleClassify)
	}
	return s
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run blocks serving HTTP on the given address.
func (s *Server) Run(addr string) error {
	slog.Info("Starting revlens server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// classifyRequest is one review to classify.
type classifyRequest struct {
	Location string `json:"location"`
	Review   string `json:"review" binding:"required"`
}

func (s *Server) handleClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: review is required"})
		return
	}

	result, err := s.classifier.Classify(c.Request.Context(), req.Location, req.Review)
	if err != nil {
		classificationErrors.Inc()
		slog.Error("Classification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	decision := result.Decision
	if decision == "" {
		decision = "unknown"
	}
	classificationsTotal.WithLabelValues(decision).Inc()
	c.JSON(http.StatusOK, result)
}

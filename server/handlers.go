package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"vfbridge/bridge"
)

type ChatRequest struct {
	ThreadID string `json:"thread_id"`
	Message  string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"ok": true,
	})
}

func (s *Server) version(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"version": VERSION,
	})
}

// vfTest lets the Voiceflow flow verify its API block captures
// response.response correctly.
func (s *Server) vfTest(c echo.Context) error {
	return c.JSON(http.StatusOK, ChatResponse{Response: "pong"})
}

func (s *Server) startConversation(c echo.Context) error {
	threadID, err := s.bridge.StartThread(c.Request().Context())
	if err != nil {
		log.Println("unable to start thread: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"thread_id": nil,
			"error":     err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"thread_id": threadID,
	})
}

func (s *Server) stats(c echo.Context) error {
	counts, err := s.bridge.TurnStats(STATS_WINDOW)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"window_hours": int(STATS_WINDOW.Hours()),
		"counts":       counts,
	})
}

// chat runs one conversational turn. Voiceflow only inspects the payload, so
// the reply is always 200 with a displayable string; the single exception is
// a missing thread_id, which means there is no conversation to answer into.
func (s *Server) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reply, err := s.bridge.SubmitTurn(c.Request().Context(), req.ThreadID, req.Message)
	if errors.Is(err, bridge.ErrEmptyThreadID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing thread_id")
	}
	if err != nil {
		// the bridge resolves everything else into text itself; any other
		// error still has to come back displayable
		log.Println("unexpected turn error: ", err)
		reply = fmt.Sprintf("%s: %s", bridge.INTERNAL_ERROR_RESPONSE, err)
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Saba3939/oneday-todo/internal/clock"
	"github.com/Saba3939/oneday-todo/internal/model"
	"github.com/Saba3939/oneday-todo/internal/store"
	"github.com/Saba3939/oneday-todo/internal/store/remote"
)

// taskStore builds the remote store bound to the authenticated owner. Row
// isolation lives in the store itself; handlers only translate HTTP.
func (s *Server) taskStore(c echo.Context) *remote.Store {
	owner := c.Get("user_id").(string)
	return remote.New(s.db, owner, s.billing, s.stats)
}

// storeError maps the store's error taxonomy onto HTTP responses. Quota and
// validation failures carry a machine-readable code so clients can tell them
// apart from generic failures.
func storeError(c echo.Context, err error) error {
	var qe *store.QuotaError
	switch {
	case errors.As(err, &qe):
		return c.JSON(http.StatusForbidden, map[string]any{
			"error": qe.Error(),
			"code":  "quota_exceeded",
			"limit": qe.Limit,
			"count": qe.Count,
		})
	case errors.Is(err, store.ErrEmptyContent):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
			"code":  "empty_content",
		})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": store.ErrNotFound.Error(),
			"code":  "not_found",
		})
	default:
		c.Logger().Error("store error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func taskID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// handleListTasks returns tasks for one day (?date=, default today) or all
// tasks strictly before a day (?before=), both in order_index order.
func (s *Server) handleListTasks(c echo.Context) error {
	ts := s.taskStore(c)
	ctx := c.Request().Context()

	var tasks []model.Task
	var err error
	if before := c.QueryParam("before"); before != "" {
		day, perr := clock.ParseDay(before)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid before date"})
		}
		tasks, err = ts.ListBefore(ctx, day)
	} else {
		day := clock.Today()
		if date := c.QueryParam("date"); date != "" {
			var perr error
			if day, perr = clock.ParseDay(date); perr != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
			}
		}
		tasks, err = ts.ListDay(ctx, day)
	}
	if err != nil {
		return storeError(c, err)
	}

	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

type addTaskRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAddTask(c echo.Context) error {
	var req addTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	task, err := s.taskStore(c).Add(c.Request().Context(), req.Content)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleToggleTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid task id"})
	}

	if err := s.taskStore(c).Toggle(c.Request().Context(), id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type updateTaskRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid task id"})
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if err := s.taskStore(c).UpdateContent(c.Request().Context(), id, req.Content); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid task id"})
	}

	if err := s.taskStore(c).Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type reorderRequest struct {
	IDs []int64 `json:"ids"`
}

func (s *Server) handleReorderTasks(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ids required"})
	}

	if err := s.taskStore(c).Reorder(c.Request().Context(), req.IDs); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

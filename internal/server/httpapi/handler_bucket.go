package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/services"
)

// pathID parses a numeric path parameter. A non-numeric value behaves like
// a miss on the named resource.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

// notFoundBody builds the 404 payload. Bucket endpoints historically report
// misses under "message", item endpoints under "error".
func notFoundBody(key string, err error) echo.Map {
	var nf *common.NotFoundError
	if errors.As(err, &nf) {
		return echo.Map{key: nf.Error()}
	}
	return echo.Map{key: "Bucket does not exist"}
}

func (s *Server) listBuckets(c echo.Context) error {
	user := currentUser(c)

	buckets, err := s.buckets.ListBuckets(c.Request().Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	result := make([]bucketView, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, toBucketView(b))
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) createBucket(c echo.Context) error {
	user := currentUser(c)

	var req bucketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	bucket, err := s.buckets.CreateBucket(c.Request().Context(), user.ID, req.Name, req.Description)
	if err != nil {
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated,
		bucketResult{ID: bucket.ID, Name: bucket.Name, Description: bucket.Description})
}

func (s *Server) getBucket(c echo.Context) error {
	user := currentUser(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("message", err))
	}

	bucket, err := s.buckets.GetBucket(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, notFoundBody("message", err))
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, toBucketView(bucket))
}

func (s *Server) updateBucket(c echo.Context) error {
	user := currentUser(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("message", err))
	}

	var req bucketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	bucket, err := s.buckets.UpdateBucket(c.Request().Context(), user.ID, id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, notFoundBody("message", err))
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, toBucketView(bucket))
}

func (s *Server) deleteBucket(c echo.Context) error {
	user := currentUser(c)

	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("message", err))
	}

	if err := s.buckets.DeleteBucket(c.Request().Context(), user.ID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, notFoundBody("message", err))
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

func (s *Server) addItem(c echo.Context) error {
	user := currentUser(c)

	bucketID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("error", err))
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}

	item, err := s.buckets.AddItem(c.Request().Context(), user.ID, bucketID,
		req.Title, req.Description, req.DueDate)
	if err != nil {
		var invalid *common.ValidationError
		switch {
		case errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Field})
		case errors.Is(err, common.ErrorNotFound):
			return c.JSON(http.StatusNotFound, notFoundBody("error", err))
		default:
			s.logger.Error(c.Request().Context(), err.Error())
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, toItemResult(item))
}

func (s *Server) updateItem(c echo.Context) error {
	user := currentUser(c)

	bucketID, err := pathID(c, "bucket_id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("error", err))
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("error", &common.NotFoundError{Resource: "BucketItem"}))
	}

	upd, err := bindItemUpdate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request body"})
	}

	item, err := s.buckets.UpdateItem(c.Request().Context(), user.ID, bucketID, itemID, upd)
	if err != nil {
		var invalid *common.ValidationError
		switch {
		case errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Field})
		case errors.Is(err, common.ErrorNotFound):
			return c.JSON(http.StatusNotFound, notFoundBody("error", err))
		default:
			s.logger.Error(c.Request().Context(), err.Error())
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, toItemResult(item))
}

func (s *Server) deleteItem(c echo.Context) error {
	user := currentUser(c)

	bucketID, err := pathID(c, "bucket_id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("error", err))
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return c.JSON(http.StatusNotFound, notFoundBody("error", &common.NotFoundError{Resource: "BucketItem"}))
	}

	if err := s.buckets.DeleteItem(c.Request().Context(), user.ID, bucketID, itemID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.JSON(http.StatusNotFound, notFoundBody("error", err))
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"id": itemID})
}

// bindItemUpdate decodes a partial item update. Absent fields must stay
// distinguishable from empty ones, and is_complete keeps whatever JSON
// type the client sent, so the body is decoded by hand instead of into a
// typed DTO.
func bindItemUpdate(c echo.Context) (services.ItemUpdate, error) {
	var upd services.ItemUpdate

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		body := map[string]any{}
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return upd, err
		}
		if v, ok := body["title"].(string); ok {
			upd.Title = &v
		}
		if v, ok := body["description"].(string); ok {
			upd.Description = &v
		}
		if v, ok := body["due_date"].(string); ok {
			upd.DueDate = &v
		}
		if v, ok := body["is_complete"]; ok {
			upd.IsComplete = v
		}
		return upd, nil
	}

	params, err := c.FormParams()
	if err != nil {
		return upd, err
	}
	if vs, ok := params["title"]; ok && len(vs) > 0 {
		upd.Title = &vs[0]
	}
	if vs, ok := params["description"]; ok && len(vs) > 0 {
		upd.Description = &vs[0]
	}
	if vs, ok := params["due_date"]; ok && len(vs) > 0 {
		upd.DueDate = &vs[0]
	}
	if vs, ok := params["is_complete"]; ok && len(vs) > 0 {
		upd.IsComplete = vs[0]
	}
	return upd, nil
}

package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"

	"userapi/internal/delivery/api/response"
	"userapi/internal/domain/entity"
	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/errors"
	"userapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
}

// UserHandler holds dependencies for user-related handlers
type UserHandler struct {
	userUC usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var input entity.UserCreate
	if err := bindBody(c, &input); err != nil {
		return err
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	input, err := parseListQuery(c)
	if err != nil {
		return err
	}

	out, err := h.userUC.ListUsers(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Page(c, out.Users, out.Page, out.Limit, out.Total)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUC.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateUser handles PUT and PATCH /users/:id. Both merge only the supplied fields.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var input entity.UserUpdate
	if err := bindBody(c, &input); err != nil {
		return err
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), c.Param("id"), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.userUC.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// bindBody decodes only the request body; path params never leak into inputs.
// A value of the wrong JSON type is reported under its own field name.
func bindBody(c echo.Context, dst any) error {
	err := new(echo.DefaultBinder).BindBody(c, dst)
	if err == nil {
		return nil
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code != http.StatusBadRequest {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domainerrors.NewValidationError(map[string]string{typeErr.Field: typeMessage(typeErr.Type)})
	}
	if errors.As(err, &typeErr) {
		return domainerrors.NewValidationError(map[string]string{"body": "must be a JSON object"})
	}

	return domainerrors.NewValidationError(map[string]string{"body": "must be valid JSON"})
}

func typeMessage(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.String:
		return "must be a string"
	default:
		return "has an invalid type"
	}
}

// parseListQuery reads q, min_age, max_age, is_active, page and limit.
// Unparsable values are rejected; out-of-range paging is left to the policy.
func parseListQuery(c echo.Context) (*usecase.ListUsersInput, error) {
	fields := make(map[string]string)
	input := &usecase.ListUsersInput{}

	if q := c.QueryParam("q"); q != "" {
		input.Filter.Q = &q
	}
	input.Filter.MinAge = parseAge(c, "min_age", fields)
	input.Filter.MaxAge = parseAge(c, "max_age", fields)

	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			fields["is_active"] = "must be a boolean"
		} else {
			input.Filter.IsActive = &active
		}
	}

	input.Page = parseInt(c, "page", fields)
	input.Limit = parseInt(c, "limit", fields)

	if len(fields) > 0 {
		return nil, domainerrors.NewValidationError(fields)
	}

	return input, nil
}

func parseAge(c echo.Context, name string, fields map[string]string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	age, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		fields[name] = "must be an integer"

		return nil
	case age < 0:
		fields[name] = "must be greater than or equal to 0"

		return nil
	}

	return &age
}

// parseInt returns 0 for an absent parameter, which the pagination policy
// treats as missing.
func parseInt(c echo.Context, name string, fields map[string]string) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = "must be an integer"

		return 0
	}

	return n
}

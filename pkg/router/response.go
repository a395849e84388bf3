package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func writeResponse(ctx context.Context, w http.ResponseWriter, resp any) {
	if err := writeJson(w, newResponse(resp)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, err error) {
	if err := writeJson(w, newErrorResponse(err)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

func writeJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}

func bindRequest(r *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet, http.MethodDelete:
		return bindQuery(r, req)

	default:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return errorx.New(errorx.BadRequest, "Cannot read the request body")
		}

		if len(b) == 0 {
			return nil
		}

		if err := json.Unmarshal(b, req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid json body")
		}

		return nil
	}
}

func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid value of %s", name)
			}
			v.Field(i).SetInt(val)

		case reflect.Float64:
			val, err := strconv.ParseFloat(queryVal, 64)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid value of %s", name)
			}
			v.Field(i).SetFloat(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid value of %s", name)
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}

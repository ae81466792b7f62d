package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/pkg/utils"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is empty"
		}
		utils.ResponseBadRequest(w, msg, nil)
		return false
	}
	return true
}

func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// activeOnly reads ?active=true|false, defaulting to false (everything).
func activeOnly(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("active"))
	return err == nil && v
}

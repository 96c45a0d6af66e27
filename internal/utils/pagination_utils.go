package utils

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"

	"commerce-core/internal/schemas"
)

var errNotASlice = errors.New("records not a valid list")

// ParsePaginationParams extracts the 'offset' and 'limit' query parameters.
// Missing or malformed values fall back to offset 0 and limit 10.
func ParsePaginationParams(c *gin.Context) (int, int) {
	offset, err := strconv.Atoi(c.DefaultQuery(OffsetParamKey, "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	limit, err := strconv.Atoi(c.DefaultQuery(LimitParamKey, "10"))
	if err != nil || limit < 0 {
		limit = 10
	}

	return offset, limit
}

// SendPaginatedResponse writes the subset of records selected by offset and
// limit together with the pagination envelope.
func SendPaginatedResponse(c *gin.Context, records interface{}, offset, limit, totalRecords int) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice {
		WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, errNotASlice)
		return
	}

	if offset > v.Len() {
		offset = v.Len()
	}

	end := offset + limit
	if end > v.Len() {
		end = v.Len()
	}

	subset := records
	if v.Len() > 0 {
		subset = v.Slice(offset, end).Interface()
	}

	WriteAndLogResponse(c, &schemas.PaginatedDTO{
		Success: true,
		Records: subset,
		Pagination: schemas.Pagination{
			Offset:  offset,
			Limit:   limit,
			Records: totalRecords,
		},
	}, http.StatusOK)
}

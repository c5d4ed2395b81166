package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/application/service"
	"github.com/tulipbilling/invoicing-api/internal/domain/entity"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/request"
)

// GetIdentity extracts the authenticated identity from the Gin context
func GetIdentity(c *gin.Context) (entity.Identity, bool) {
	value, exists := c.Get("identity")
	if !exists {
		return entity.Identity{}, false
	}
	identity, ok := value.(entity.Identity)
	return identity, ok
}

// parseLedgerFilter converts the query-string filter into the service form.
// Unknown enum values are dropped silently so stale bookmarks keep working.
func parseLedgerFilter(q *request.LedgerFilterQuery) (*service.LedgerFilter, error) {
	filter := &service.LedgerFilter{}

	filter.Stalls = splitCSV(q.Stalls)
	for _, raw := range splitCSV(q.PaymentMethods) {
		method := enum.PaymentMethod(raw)
		if method.Valid() {
			filter.PaymentMethods = append(filter.PaymentMethods, method)
		}
	}
	for _, raw := range splitCSV(q.Statuses) {
		status := enum.InvoiceStatus(raw)
		if status.Valid() {
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	if q.StartDate != "" {
		start, err := time.Parse("02-01-2006", q.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = start
	}
	if q.EndDate != "" {
		end, err := time.Parse("02-01-2006", q.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = end
	}

	return filter, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

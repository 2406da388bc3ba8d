package httpapi

import (
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) PaymentSummary(c *gin.Context) {
	sum, err := h.svc.Analytics.PaymentSummary(c.Request.Context(), models.ParseDateRange(c.Request.URL.Query()))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, sum)
}

func (h *Handler) ListPayments(c *gin.Context) {
	q := c.Request.URL.Query()
	page, err := h.svc.Analytics.Payments(c.Request.Context(), models.ParsePageRequest(q), models.ParsePaymentFilter(q))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, page)
}

func (h *Handler) Usage(c *gin.Context) {
	q := c.Request.URL.Query()
	stats, err := h.svc.Analytics.Usage(c.Request.Context(), models.ParseDateRange(q), models.Granularity(q.Get("granularity")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, stats)
}

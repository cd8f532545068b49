package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/logging"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getQueryString retrieves a trimmed string query parameter
func getQueryString(c *gin.Context, paramName string) string {
	return strings.TrimSpace(c.Query(paramName))
}

// bindJSON binds the JSON request body. Binding failures on required fields
// are returned as error details keyed by the JSON field name.
func bindJSON(c *gin.Context, obj interface{}) ([]model.ErrorDetail, error) {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]model.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, newErrorDetail(jsonFieldPath(fe.Namespace()), fieldMessage(fe)))
		}
		return details, nil
	}
	return nil, fmt.Errorf("invalid JSON format: %v", err)
}

// jsonFieldPath turns "CreateInvoiceRequest.Invoice.InvoiceNumber" into
// "invoice.invoiceNumber"
func jsonFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	path := strings.Join(parts, ".")
	return strings.ReplaceAll(path, "ID", "Id")
}

func fieldMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

// mergeDetails appends the details of extra whose field is not already reported
func mergeDetails(details, extra []model.ErrorDetail) []model.ErrorDetail {
	seen := make(map[string]bool, len(details))
	for _, d := range details {
		seen[d.Field] = true
	}
	for _, d := range extra {
		if !seen[d.Field] {
			details = append(details, d)
		}
	}
	return details
}

// requireText appends a detail when value is blank
func requireText(details []model.ErrorDetail, field, label, value string) []model.ErrorDetail {
	if strings.TrimSpace(value) == "" {
		return append(details, newErrorDetail(field, label+" is required"))
	}
	return details
}

// checkAmount appends a detail when value is not a plain cents amount, or
// when it is not positive (or negative, with allowZero)
func checkAmount(details []model.ErrorDetail, field, label, value string, allowZero bool) []model.ErrorDetail {
	d, err := domain.ParseMoney(value)
	if errors.Is(err, domain.ErrMoneyFormat) {
		return append(details, newErrorDetail(field, label+" must have at most 2 decimal places"))
	}
	if err != nil {
		return append(details, newErrorDetail(field, label+" must be a decimal number"))
	}
	if allowZero && d.IsNegative() {
		return append(details, newErrorDetail(field, label+" cannot be negative"))
	}
	if !allowZero && !d.IsPositive() {
		return append(details, newErrorDetail(field, label+" must be greater than zero"))
	}
	return details
}

// parsePriceBound parses an optional price query parameter
func parsePriceBound(value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("price must be a decimal number")
	}
	return &d, nil
}

// logError logs an unexpected failure on the request-scoped logger
func logError(c *gin.Context, event string, err error, fields map[string]interface{}) {
	entry := logging.FromContext(c.Request.Context()).WithFields(logrus.Fields{
		"event":  event,
		"path":   c.FullPath(),
		"method": c.Request.Method,
	})
	if fields != nil {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	entry.WithError(err).Error("request failed")
}

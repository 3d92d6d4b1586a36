package main

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/models"
	"bitbucket.org/ztofreight/quotes_backend/models/exports"
	"bitbucket.org/ztofreight/quotes_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// respondError maps typed model errors onto HTTP statuses. Anything
// unclassified is a server fault: logged with its correlation id, reported
// generically.
func respondError(c *gin.Context, err error) {
	var validationErr *utils.ValidationError
	var renderErr *exports.RenderError

	switch {
	case errors.Is(err, utils.ErrorRecordNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, utils.ErrorCannotDeleteDefault):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorAllocationExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorDuplicateNumber):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &renderErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": renderErr.Error()})
	default:
		logger := config.GetLogger()
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		config.LogError(logger, "handlers.go", c.FullPath(), "unhandled error", cid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondBindError reports a request-body binding failure. Whatever the
// cause (malformed JSON, failed binding tag, rejected enum value), the
// request itself is at fault, so the status is always 400.
func respondBindError(c *gin.Context, err error) {
	var bindingErrs validator.ValidationErrors
	if errors.As(err, &bindingErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// --- quotes ---

func listQuotesHandler(c *gin.Context) {
	var filter models.QuoteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	quotes, total, err := models.GetQuotes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": quotes, "total": total})
}

func createQuoteHandler(c *gin.Context) {
	var input models.NewQuote
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := models.CreateQuote(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func getQuoteHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quote, err := models.GetQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func updateQuoteHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := models.UpdateQuote(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func updateQuoteStatusHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input struct {
		Status models.QuoteStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of DRAFT, SENT, CONFIRMED, EXPIRED"})
		return
	}
	quote, err := models.UpdateQuoteStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func copyQuoteHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quote, err := models.CopyQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func deleteQuoteHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := models.DeleteQuote(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// nextQuoteNumberHandler previews the number the next create would get for a
// date. Purely informational; nothing is reserved.
func nextQuoteNumberHandler(c *gin.Context) {
	dateParam := c.DefaultQuery("date", "")
	date := utils.Today()
	if dateParam != "" {
		parsed, err := utils.ParseDate(dateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	number, err := models.NextQuoteNumber(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote_number": number})
}

func listQuoteExportsHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	records, err := models.GetQuoteExports(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// --- quoters ---

func listQuotersHandler(c *gin.Context) {
	name := utils.NilIfEmpty(c.Query("name"))
	quoters, err := models.GetQuoters(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoters)
}

func createQuoterHandler(c *gin.Context) {
	var input models.NewQuoter
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quoter, err := models.CreateQuoter(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quoter)
}

func getQuoterHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quoter, err := models.GetQuoter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoter)
}

func updateQuoterHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewQuoter
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	quoter, err := models.UpdateQuoter(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoter)
}

func setDefaultQuoterHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quoter, err := models.SetDefaultQuoter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoter)
}

func deleteQuoterHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	quoter, err := models.DeleteQuoter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoter)
}

// --- templates ---

func listTemplatesHandler(c *gin.Context) {
	templateType := utils.NilIfEmpty(c.Query("type"))
	if templateType != nil && !models.IsAllowedTemplateType(*templateType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of TONGPIAO, DAKEHU, CANGPEI"})
		return
	}
	var isActive *bool
	switch c.Query("is_active") {
	case "true":
		isActive = utils.NewTrue()
	case "false":
		isActive = utils.NewFalse()
	}
	templates, err := models.GetTemplates(c.Request.Context(), templateType, isActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func createTemplateHandler(c *gin.Context) {
	var input models.NewTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	template, err := models.CreateTemplate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func getTemplateHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	template, err := models.GetTemplate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func updateTemplateHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	template, err := models.UpdateTemplate(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func setDefaultTemplateHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	template, err := models.SetDefaultTemplate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func deleteTemplateHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	template, err := models.DeleteTemplate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func getDefaultTemplateHandler(c *gin.Context) {
	templateType := c.Query("type")
	if !models.IsAllowedTemplateType(templateType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of TONGPIAO, DAKEHU, CANGPEI"})
		return
	}
	template, err := models.GetDefaultTemplate(c.Request.Context(), models.TemplateType(templateType))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// --- catalog ---

func listProvincesHandler(c *gin.Context) {
	provinces, err := models.GetProvinces(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provinces)
}

func listRegionsHandler(c *gin.Context) {
	regions, err := models.GetRegions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

func listFixedTermsHandler(c *gin.Context) {
	terms, err := models.GetFixedTerms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func listOptionalTermsHandler(c *gin.Context) {
	terms, err := models.GetOptionalTerms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

// --- exports ---

func renderQuoteArtifact(c *gin.Context, format exports.Format) (*exports.Artifact, int, bool) {
	id, ok := pathId(c)
	if !ok {
		return nil, 0, false
	}
	quote, err := models.GetQuote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, 0, false
	}
	quoter, err := models.GetQuoter(c.Request.Context(), quote.QuoterId)
	if err != nil {
		respondError(c, err)
		return nil, 0, false
	}
	artifact, err := exports.Render(quote, quoter, format, c.DefaultQuery("theme", "blue"))
	if err != nil {
		respondError(c, err)
		return nil, 0, false
	}
	return artifact, id, true
}

func previewQuoteHandler(c *gin.Context) {
	artifact, _, ok := renderQuoteArtifact(c, exports.FormatHTML)
	if !ok {
		return
	}
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}

func exportQuoteHandler(format exports.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		artifact, id, ok := renderQuoteArtifact(c, format)
		if !ok {
			return
		}
		err := models.RecordQuoteExport(c.Request.Context(), id, string(format), artifact.Filename, len(artifact.Content))
		if err != nil {
			respondError(c, err)
			return
		}

		disposition := "attachment"
		if format == exports.FormatPDF {
			disposition = "inline"
		}
		c.Header("Content-Disposition", disposition+"; filename="+artifact.Filename)
		c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
	}
}

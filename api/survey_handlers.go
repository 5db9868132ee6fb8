package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/internal/similarity"
	"github.com/gcbaptista/go-survey-similarity/model"
)

// SubmitHandler stores one survey submission.
// It accepts either a JSON body {"candidateName", "responses"} or an HTML form
// with candidateName and q1..q20, where the value of qN is the chosen option number.
func (api *API) SubmitHandler(c *gin.Context) {
	var record model.CandidateRecord

	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&record); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
	} else {
		var err error
		record, err = recordFromForm(c)
		if err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid form submission: "+err.Error())
			return
		}
	}

	if result := ValidateSubmission(record); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.manager.Submit(c.Request.Context(), record); err != nil {
		api.logger.Warn("submission rejected", zap.String("candidate", record.Name), zap.Error(err))
		SendDomainError(c, "store submission", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Survey for '" + strings.TrimSpace(record.Name) + "' submitted successfully",
		"responses": len(record.Answers),
	})
}

// recordFromForm reads candidateName and the q1..q20 fields, skipping blank answers.
func recordFromForm(c *gin.Context) (model.CandidateRecord, error) {
	if err := c.Request.ParseForm(); err != nil {
		return model.CandidateRecord{}, err
	}

	record := model.CandidateRecord{
		Name:    c.PostForm("candidateName"),
		Answers: []model.Answer{},
	}
	for q := 1; q <= similarity.TotalQuestions; q++ {
		value, ok := c.GetPostForm(fmt.Sprintf("q%d", q))
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		record.Answers = append(record.Answers, model.NewAnswer(q, value))
	}
	return record, nil
}

// ListSurveysHandler returns every stored submission in submission order.
func (api *API) ListSurveysHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.manager.Candidates())
}

// StatsHandler returns a summary of the stored submissions.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.manager.Stats())
}

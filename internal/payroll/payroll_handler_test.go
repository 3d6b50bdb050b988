package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-payroll/internal/payroll"
	perioderrors "go-payroll/internal/period/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	processFn      func(ctx context.Context, companyID, actorID, periodID string) (payroll.RunSummary, error)
	getAllFn       func(ctx context.Context, companyID, periodID string) ([]payroll.PayrollResponse, error)
	getByIDFn      func(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error)
	getBreakdownFn func(ctx context.Context, companyID, id string) (payroll.BreakdownResponse, error)
}

func (f *fakePayrollService) ProcessPeriod(ctx context.Context, companyID, actorID, periodID string) (payroll.RunSummary, error) {
	return f.processFn(ctx, companyID, actorID, periodID)
}

func (f *fakePayrollService) GetAllByPeriod(ctx context.Context, companyID, periodID string) ([]payroll.PayrollResponse, error) {
	return f.getAllFn(ctx, companyID, periodID)
}

func (f *fakePayrollService) GetByID(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePayrollService) GetBreakdown(ctx context.Context, companyID, id string) (payroll.BreakdownResponse, error) {
	return f.getBreakdownFn(ctx, companyID, id)
}

func TestPayrollHandler_Process(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	svc := &fakePayrollService{
		processFn: func(ctx context.Context, cid, aid, pid string) (payroll.RunSummary, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, periodID, pid)
			return payroll.RunSummary{
				PeriodID:       pid,
				PeriodStatus:   "pending_approval",
				TotalEmployees: 9,
				ProcessedCount: 9,
				SkippedCount:   1,
				TotalGross:     450000,
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-periods/"+periodID+"/process", nil)
	c.Params = []gin.Param{{Key: "id", Value: periodID}}
	c.Set("company_id", companyID)
	c.Set("user_id_validated", actorID)

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var summary payroll.RunSummary
	assert.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 9, summary.ProcessedCount)
	assert.Equal(t, 1, summary.SkippedCount)
}

func TestPayrollHandler_Process_InvalidState(t *testing.T) {
	svc := &fakePayrollService{
		processFn: func(ctx context.Context, companyID, actorID, periodID string) (payroll.RunSummary, error) {
			return payroll.RunSummary{}, perioderrors.ErrInvalidState
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	periodID := uuid.New().String()
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-periods/"+periodID+"/process", nil)
	c.Params = []gin.Param{{Key: "id", Value: periodID}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id_validated", uuid.New().String())

	h.Process(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.NotNil(t, env.Error)
}

func TestPayrollHandler_GetBreakdown(t *testing.T) {
	payrollID := uuid.New().String()
	svc := &fakePayrollService{
		getBreakdownFn: func(ctx context.Context, companyID, id string) (payroll.BreakdownResponse, error) {
			return payroll.BreakdownResponse{
				Payroll: payroll.PayrollResponse{ID: id, Status: payroll.StatusCalculated, NetPay: 41220},
				LineItems: []payroll.LineItemResponse{
					{Name: "Basic Salary", Type: payroll.LineTypeEarning, Amount: 50000, IsTaxable: true},
					{Name: "PAYE", Type: payroll.LineTypeStatutory, Amount: 6500},
				},
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/"+payrollID+"/breakdown", nil)
	c.Params = []gin.Param{{Key: "id", Value: payrollID}}
	c.Set("company_id", uuid.New().String())

	h.GetBreakdown(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var breakdown payroll.BreakdownResponse
	assert.NoError(t, json.Unmarshal(env.Data, &breakdown))
	assert.Len(t, breakdown.LineItems, 2)
}

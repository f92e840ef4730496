package handlers_test

import (
	"net/http"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const scenarioBaseURL = "/api/v1/organizations/" + testOrgID + "/scenarios"

func (suite *HandlerTestSuite) TestListScenarios_EmptyIsArray() {
	suite.mockBudgetService.On("ListScenarios", mock.Anything, testOrgID, testUserID).Return(nil, nil).Once()

	w := suite.serve(http.MethodGet, scenarioBaseURL, nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"scenarios":[]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateScenario_DuplicateName() {
	req := dto.CreateScenarioRequest{Name: "Basis", Year: 2025}
	suite.mockBudgetService.On("CreateScenario", mock.Anything, testOrgID, testUserID, req).
		Return(nil, apperrors.NewConflictError("a scenario with this name already exists for 2025")).Once()

	w := suite.serveJSON(http.MethodPost, scenarioBaseURL, req, testUserID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateScenario_YearOutOfRange() {
	w := suite.serveJSON(http.MethodPost, scenarioBaseURL, dto.CreateScenarioRequest{Name: "Basis", Year: 25}, testUserID)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListBudgetEntries_InvalidPeriod() {
	w := suite.serve(http.MethodGet, scenarioBaseURL+"/sc-1/entries?period=2025-13", nil, "", testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBudgetService.AssertNotCalled(suite.T(), "ListBudgetEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListBudgetEntries_FiltersByPeriod() {
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.BudgetEntry{{
		BudgetEntryID: "be-1",
		ScenarioID:    "sc-1",
		EntryType:     domain.EntryTypeRevenue,
		Period:        march,
		Amount:        decimal.NewFromInt(1500),
	}}
	suite.mockBudgetService.On("ListBudgetEntries", mock.Anything, testOrgID, "sc-1", testUserID,
		mock.MatchedBy(func(p *time.Time) bool { return p != nil && p.Equal(march) }),
	).Return(entries, nil).Once()

	w := suite.serve(http.MethodGet, scenarioBaseURL+"/sc-1/entries?period=2025-03", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBudgetEntriesResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Entries, 1)
	suite.True(resp.Entries[0].Amount.Equal(decimal.NewFromInt(1500)))
}

func (suite *HandlerTestSuite) TestDeleteBudgetEntry() {
	suite.mockBudgetService.On("DeleteBudgetEntry", mock.Anything, testOrgID, "sc-1", "be-1", testUserID).Return(nil).Once()

	w := suite.serve(http.MethodDelete, scenarioBaseURL+"/sc-1/entries/be-1", nil, "", testUserID)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestBudgetVsActual_RequiresScenario() {
	w := suite.serve(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/reports/budget-vs-actual?year=2025", nil, "", testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "BudgetVsActual", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestBudgetVsActual_Success() {
	report := &domain.BudgetVsActualReport{ScenarioID: "sc-1", Year: 2024, NetBudget: decimal.NewFromInt(100)}
	suite.mockReporting.On("BudgetVsActual", mock.Anything, testOrgID, testUserID, "sc-1", 2024).Return(report, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/reports/budget-vs-actual?scenarioID=sc-1&year=2024", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.BudgetVsActualReport
	suite.decode(w, &resp)
	suite.Equal(2024, resp.Year)
	suite.True(resp.NetBudget.Equal(decimal.NewFromInt(100)))
}

func (suite *HandlerTestSuite) TestBudgetVsActual_YearMismatchIsBadRequest() {
	suite.mockReporting.On("BudgetVsActual", mock.Anything, testOrgID, testUserID, "sc-1", 2023).
		Return(nil, apperrors.NewValidationFailedError("year 2023 does not match scenario year 2024")).Once()

	w := suite.serve(http.MethodGet, "/api/v1/organizations/"+testOrgID+"/reports/budget-vs-actual?scenarioID=sc-1&year=2023", nil, "", testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "does not match scenario year")
}

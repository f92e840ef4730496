package handlers_test

import (
	"net/http"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const productBaseURL = "/api/v1/organizations/" + testOrgID + "/products"

func (suite *HandlerTestSuite) TestListProducts_ActiveFilter() {
	products := []domain.Product{{ProductID: "p-1", Name: "Consultancy", UnitPrice: decimal.NewFromInt(95), IsActive: true}}
	suite.mockProductService.On("ListProducts", mock.Anything, testOrgID, testUserID, true).Return(products, nil).Once()

	w := suite.serve(http.MethodGet, productBaseURL+"?active=true", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListProductsResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Products, 1)
	suite.Equal("Consultancy", resp.Products[0].Name)
}

func (suite *HandlerTestSuite) TestUpdateProduct_ReadOnlyMember() {
	name := "Licenties"
	req := dto.UpdateProductRequest{Name: &name}
	suite.mockProductService.On("UpdateProduct", mock.Anything, testOrgID, "p-1", testUserID, req).
		Return(nil, apperrors.NewForbiddenError("insufficient role")).Once()

	w := suite.serveJSON(http.MethodPatch, productBaseURL+"/p-1", req, testUserID)

	suite.Equal(http.StatusForbidden, w.Code)
}

package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/handlers"
	"github.com/stretchr/testify/mock"
)

const glBaseURL = "/api/v1/organizations/" + testOrgID + "/gl-accounts"

// workbookUpload builds a multipart body with one file in field.
func (suite *HandlerTestSuite) workbookUpload(field, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())
	return body, writer.FormDataContentType()
}

func (suite *HandlerTestSuite) TestImportGLAccounts_MissingFile() {
	body, contentType := suite.workbookUpload("attachment", "coa.xlsx", []byte("x"))

	w := suite.serve(http.MethodPost, glBaseURL+"/import", body, contentType, testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGLAccountService.AssertNotCalled(suite.T(), "ImportGLAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestImportGLAccounts_RejectsCSV() {
	body, contentType := suite.workbookUpload("file", "coa.csv", []byte("code,name\n8000,Omzet\n"))

	w := suite.serve(http.MethodPost, glBaseURL+"/import", body, contentType, testUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.decode(w, &resp)
	suite.Contains(resp.Error, ".xlsx")
}

func (suite *HandlerTestSuite) TestImportGLAccounts_Success() {
	result := &domain.ImportResult{Imported: 3, Skipped: 1}
	suite.mockGLAccountService.On("ImportGLAccounts", mock.Anything, testOrgID, testUserID, mock.Anything).Return(result, nil).Once()
	body, contentType := suite.workbookUpload("file", "Rekeningschema.XLSX", []byte("PK\x03\x04"))

	w := suite.serve(http.MethodPost, glBaseURL+"/import", body, contentType, testUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.ImportResult
	suite.decode(w, &resp)
	suite.Equal(3, resp.Imported)
	suite.Equal(1, resp.Skipped)
}

func (suite *HandlerTestSuite) TestGetGLAccount_NotFound() {
	suite.mockGLAccountService.On("GetGLAccount", mock.Anything, testOrgID, "gl-404", testUserID).
		Return(nil, apperrors.NewNotFoundError("GL account not found")).Once()

	w := suite.serve(http.MethodGet, glBaseURL+"/gl-404", nil, "", testUserID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetGLAccountTree() {
	tree := []domain.GLAccountNode{{GLAccount: domain.GLAccount{Code: "8", Name: "Omzet", Level: 1}}}
	suite.mockGLAccountService.On("GetGLAccountTree", mock.Anything, testOrgID, testUserID).Return(tree, nil).Once()

	w := suite.serve(http.MethodGet, glBaseURL+"/tree", nil, "", testUserID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"Omzet"`)
}

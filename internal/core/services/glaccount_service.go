package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/accounting"
)

const defaultImportBatchSize = 50

// glAccountService implements the GLAccountSvcFacade interface
type glAccountService struct {
	BaseService
	glRepo      portsrepo.GLAccountRepositoryFacade
	sheetReader gateways.GLAccountSheetReader
	validate    *validator.Validate
	batchSize   int
}

// GLAccountServiceOption is a functional option for configuring the GL account service
type GLAccountServiceOption func(*glAccountService)

// WithGLAccountAuthorizer sets the organization authorizer.
func WithGLAccountAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) GLAccountServiceOption {
	return func(s *glAccountService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithSheetReader sets the workbook parser used by the import.
func WithSheetReader(reader gateways.GLAccountSheetReader) GLAccountServiceOption {
	return func(s *glAccountService) {
		s.sheetReader = reader
	}
}

// WithGLAccountAnalytics reports finished imports.
func WithGLAccountAnalytics(analytics gateways.Analytics) GLAccountServiceOption {
	return func(s *glAccountService) {
		s.Analytics = analytics
	}
}

// WithImportBatchSize sets how many rows go into one database batch.
func WithImportBatchSize(n int) GLAccountServiceOption {
	return func(s *glAccountService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// NewGLAccountService creates a new GL account service with the provided options
func NewGLAccountService(repo portsrepo.GLAccountRepositoryFacade, options ...GLAccountServiceOption) portssvc.GLAccountSvcFacade {
	svc := &glAccountService{
		glRepo:    repo,
		validate:  validator.New(),
		batchSize: defaultImportBatchSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.GLAccountSvcFacade = (*glAccountService)(nil)

func (s *glAccountService) ListGLAccounts(ctx context.Context, organizationID, userID string, filter domain.GLAccountFilter) ([]domain.GLAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.glRepo.ListGLAccounts(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list GL accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list GL accounts: %w", err)
	}
	if accounts == nil {
		return []domain.GLAccount{}, nil
	}
	return accounts, nil
}

func (s *glAccountService) GetGLAccount(ctx context.Context, organizationID, glAccountID, userID string) (*domain.GLAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.glRepo.FindGLAccountByID(ctx, organizationID, glAccountID)
}

func (s *glAccountService) GetGLAccountTree(ctx context.Context, organizationID, userID string) ([]domain.GLAccountNode, error) {
	accounts, err := s.ListGLAccounts(ctx, organizationID, userID, domain.GLAccountFilter{})
	if err != nil {
		return nil, err
	}
	return BuildGLAccountTree(accounts), nil
}

// BuildGLAccountTree nests accounts under their parent code. Accounts whose parent
// code does not exist are returned as roots with Orphan set. Order follows the input.
func BuildGLAccountTree(accounts []domain.GLAccount) []domain.GLAccountNode {
	byCode := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		byCode[acc.Code] = true
	}

	children := make(map[string][]domain.GLAccount)
	roots := []domain.GLAccountNode{}
	for _, acc := range accounts {
		switch {
		case acc.ParentCode == nil:
			roots = append(roots, domain.GLAccountNode{GLAccount: acc})
		case byCode[*acc.ParentCode] && *acc.ParentCode != acc.Code:
			children[*acc.ParentCode] = append(children[*acc.ParentCode], acc)
		default:
			roots = append(roots, domain.GLAccountNode{GLAccount: acc, Orphan: true})
		}
	}

	visited := make(map[string]bool, len(accounts))
	var attach func(node *domain.GLAccountNode)
	attach = func(node *domain.GLAccountNode) {
		if visited[node.Code] {
			return
		}
		visited[node.Code] = true
		node.Children = []domain.GLAccountNode{}
		for _, child := range children[node.Code] {
			childNode := domain.GLAccountNode{GLAccount: child}
			attach(&childNode)
			node.Children = append(node.Children, childNode)
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	return roots
}

func (s *glAccountService) CreateGLAccount(ctx context.Context, organizationID, userID string, req dto.CreateGLAccountRequest) (*domain.GLAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	class, err := accounting.Classify(accounting.CodeInput{Code: code, BalanceType: req.BalanceType, DebitCredit: req.DebitCredit})
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	account := domain.GLAccount{
		GLAccountID:    uuid.NewString(),
		OrganizationID: organizationID,
		Code:           code,
		Name:           strings.TrimSpace(req.Name),
		Level:          class.Level,
		ParentCode:     class.ParentCode,
		Type:           class.Type,
		BalanceType:    req.BalanceType,
		DebitCredit:    req.DebitCredit,
		Source:         domain.SourceManual,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.glRepo.SaveGLAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save GL account", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to create GL account: %w", err)
	}

	s.LogInfo(ctx, "GL account created",
		slog.String("organization_id", organizationID),
		slog.String("gl_account_id", account.GLAccountID),
		slog.String("code", code))
	return &account, nil
}

// UpdateGLAccount changes name and active flag. Code and classification are immutable.
func (s *glAccountService) UpdateGLAccount(ctx context.Context, organizationID, glAccountID, userID string, req dto.UpdateGLAccountRequest) (*domain.GLAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.glRepo.FindGLAccountByID(ctx, organizationID, glAccountID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		if name != account.Name {
			account.Name = name
			changed = true
		}
	}
	if req.IsActive != nil && *req.IsActive != account.IsActive {
		account.IsActive = *req.IsActive
		changed = true
	}
	if !changed {
		return account, nil
	}

	account.Touch(userID, time.Now())
	if err := s.glRepo.UpdateGLAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update GL account", slog.String("gl_account_id", glAccountID))
		return nil, fmt.Errorf("failed to update GL account: %w", err)
	}
	return account, nil
}

// ImportGLAccounts reads a workbook and upserts its rows by code.
func (s *glAccountService) ImportGLAccounts(ctx context.Context, organizationID, userID string, file io.Reader) (*domain.ImportResult, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if s.sheetReader == nil {
		return nil, apperrors.NewInternalServerError("GL account import is not configured")
	}

	rows, err := s.sheetReader.ReadGLAccountRows(file)
	if err != nil {
		s.LogError(ctx, err, "Failed to read GL account workbook", slog.String("organization_id", organizationID))
		return nil, err
	}

	result := &domain.ImportResult{Issues: []domain.ImportIssue{}}
	now := time.Now()
	seen := make(map[string]int, len(rows))
	pending := make([]domain.GLAccount, 0, s.batchSize)
	pendingRows := make([]domain.GLAccountRow, 0, s.batchSize)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		written, err := s.glRepo.UpsertGLAccountsByCode(ctx, pending)
		if err != nil {
			s.LogError(ctx, err, "Failed to upsert GL account batch",
				slog.String("organization_id", organizationID),
				slog.Int("batch_size", len(pending)))
			for _, row := range pendingRows {
				result.AddIssue(row.RowNumber, row.Code, "could not be saved")
			}
		} else {
			result.Imported += written
		}
		pending = pending[:0]
		pendingRows = pendingRows[:0]
	}

	for _, row := range rows {
		row.Code = strings.TrimSpace(row.Code)
		row.Name = strings.TrimSpace(row.Name)

		if row.Code == "" {
			result.Skipped++
			continue
		}
		if err := s.validate.Struct(row); err != nil {
			result.AddIssue(row.RowNumber, row.Code, "invalid row: "+err.Error())
			continue
		}
		if row.Name == "" {
			result.AddIssue(row.RowNumber, row.Code, "name is missing")
			continue
		}
		if firstRow, dup := seen[row.Code]; dup {
			result.AddIssue(row.RowNumber, row.Code, fmt.Sprintf("duplicate of row %d", firstRow))
			continue
		}

		class, err := accounting.Classify(accounting.CodeInput{Code: row.Code, BalanceType: row.BalanceType, DebitCredit: row.DebitCredit})
		if err != nil {
			result.AddIssue(row.RowNumber, row.Code, err.Error())
			continue
		}
		seen[row.Code] = row.RowNumber

		pending = append(pending, domain.GLAccount{
			GLAccountID:    uuid.NewString(),
			OrganizationID: organizationID,
			Code:           row.Code,
			Name:           row.Name,
			Level:          class.Level,
			ParentCode:     class.ParentCode,
			Type:           class.Type,
			BalanceType:    strings.TrimSpace(row.BalanceType),
			DebitCredit:    strings.TrimSpace(row.DebitCredit),
			Source:         domain.SourceImport,
			IsActive:       true,
			AuditFields:    domain.NewAuditFields(userID, now),
		})
		pendingRows = append(pendingRows, row)
		if len(pending) >= s.batchSize {
			flush()
		}
	}
	flush()

	s.LogInfo(ctx, "GL account import finished",
		slog.String("organization_id", organizationID),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", result.Errors))
	s.CaptureEvent(userID, EventGLAccountsImported, map[string]any{
		"organization_id": organizationID,
		"imported":        result.Imported,
		"skipped":         result.Skipped,
		"errors":          result.Errors,
	})
	return result, nil
}

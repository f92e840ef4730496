package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/accounting"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/utils/pagination"
)

const (
	syncLockPrefix      = "exact-sync:"
	defaultSyncLockTTL  = 15 * time.Minute
	defaultSyncLogLimit = 20
	maxSyncLogLimit     = 100
	actualBatchSize     = 200
)

// exactSyncService copies GL accounts and booked transaction lines from Exact Online.
type exactSyncService struct {
	BaseService
	tokens      portssvc.ExactTokenSvc
	api         gateways.ExactAPI
	glRepo      portsrepo.GLAccountRepositoryFacade
	actualRepo  portsrepo.ActualEntryRepository
	syncLogRepo portsrepo.SyncLogRepository
	locker      gateways.Locker
	lockTTL     time.Duration
}

// ExactSyncDeps groups the collaborators of the sync service.
type ExactSyncDeps struct {
	Tokens      portssvc.ExactTokenSvc
	API         gateways.ExactAPI
	GLRepo      portsrepo.GLAccountRepositoryFacade
	ActualRepo  portsrepo.ActualEntryRepository
	SyncLogRepo portsrepo.SyncLogRepository
	Locker      gateways.Locker
	Authorizer  portssvc.OrganizationAuthorizerSvc
	// LockTTL bounds how long one organization's sync holds its lock. Zero means 15 minutes.
	LockTTL   time.Duration
	Analytics gateways.Analytics
}

func NewExactSyncService(deps ExactSyncDeps) portssvc.ExactSyncSvc {
	svc := &exactSyncService{
		tokens:      deps.Tokens,
		api:         deps.API,
		glRepo:      deps.GLRepo,
		actualRepo:  deps.ActualRepo,
		syncLogRepo: deps.SyncLogRepo,
		locker:      deps.Locker,
		lockTTL:     deps.LockTTL,
	}
	if svc.lockTTL <= 0 {
		svc.lockTTL = defaultSyncLockTTL
	}
	svc.OrganizationAuthorizer = deps.Authorizer
	svc.Analytics = deps.Analytics
	return svc
}

var _ portssvc.ExactSyncSvc = (*exactSyncService)(nil)

// runSync holds the organization's sync lock, records a sync log around work and
// stores the final counters. The returned error is work's error.
func (s *exactSyncService) runSync(ctx context.Context, organizationID, userID string, log *domain.SyncLog, work func(*domain.SyncLog) error) (*domain.SyncLog, error) {
	release, err := s.locker.Obtain(ctx, syncLockPrefix+organizationID, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s sync: %w", log.SyncType, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.LogError(ctx, err, "Failed to release sync lock", slog.String("organization_id", organizationID))
		}
	}()

	log.SyncLogID = uuid.NewString()
	log.OrganizationID = organizationID
	log.Status = domain.SyncStatusRunning
	log.StartedAt = time.Now()
	log.StartedBy = userID
	if err := s.syncLogRepo.CreateSyncLog(ctx, *log); err != nil {
		s.LogError(ctx, err, "Failed to create sync log", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create sync log: %w", err)
	}

	runErr := work(log)
	log.Finish(time.Now(), runErr)

	// The run itself is over; record it even if the request was cancelled meanwhile.
	if err := s.syncLogRepo.UpdateSyncLog(context.WithoutCancel(ctx), *log); err != nil {
		s.LogError(ctx, err, "Failed to update sync log", slog.String("sync_log_id", log.SyncLogID))
	}

	attrs := []any{
		slog.String("organization_id", organizationID),
		slog.String("sync_type", string(log.SyncType)),
		slog.String("status", string(log.Status)),
		slog.Int("processed", log.Processed),
		slog.Int("created", log.Created),
		slog.Int("updated", log.Updated),
		slog.Int("failed", log.Failed),
	}
	s.CaptureEvent(userID, EventExactSyncFinished, map[string]any{
		"organization_id": organizationID,
		"sync_type":       string(log.SyncType),
		"status":          string(log.Status),
		"processed":       log.Processed,
		"created":         log.Created,
		"updated":         log.Updated,
		"failed":          log.Failed,
	})
	if runErr != nil {
		s.LogError(ctx, runErr, "Exact Online sync failed", attrs...)
		return log, runErr
	}
	s.LogInfo(ctx, "Exact Online sync finished", attrs...)
	return log, nil
}

func (s *exactSyncService) SyncGLAccounts(ctx context.Context, organizationID, userID string) (*domain.SyncLog, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	log := &domain.SyncLog{SyncType: domain.SyncTypeGLAccounts}
	return s.runSync(ctx, organizationID, userID, log, func(log *domain.SyncLog) error {
		token, err := s.tokens.GetValidToken(ctx, organizationID)
		if err != nil {
			return err
		}
		accounts, err := s.api.ListGLAccounts(ctx, token.AccessToken, token.Division)
		if err != nil {
			return fmt.Errorf("failed to fetch GL accounts from Exact Online: %w", err)
		}

		now := time.Now()
		for _, ea := range accounts {
			log.Processed++
			balanceType := accounting.ExactBalanceType(ea.BalanceType)
			side := accounting.ExactBalanceSide(ea.BalanceSide)
			class, err := accounting.Classify(accounting.CodeInput{Code: ea.Code, BalanceType: balanceType, DebitCredit: side})
			if err != nil {
				log.Failed++
				s.GetLogger(ctx).Warn("Skipping Exact GL account with invalid code",
					slog.String("exact_id", ea.ID),
					slog.String("code", ea.Code))
				continue
			}

			externalID := ea.ID
			account := domain.GLAccount{
				GLAccountID:    uuid.NewString(),
				OrganizationID: organizationID,
				Code:           ea.Code,
				Name:           ea.Description,
				Level:          class.Level,
				ParentCode:     class.ParentCode,
				Type:           class.Type,
				BalanceType:    balanceType,
				DebitCredit:    side,
				ExternalID:     &externalID,
				Source:         domain.SourceExact,
				IsActive:       true,
				AuditFields:    domain.NewAuditFields(userID, now),
			}
			created, err := s.glRepo.UpsertGLAccountByExternalID(ctx, account)
			switch {
			case err != nil:
				log.Failed++
				s.LogError(ctx, err, "Failed to upsert Exact GL account", slog.String("code", ea.Code))
			case created:
				log.Created++
			default:
				log.Updated++
			}
		}
		return nil
	})
}

func (s *exactSyncService) SyncTransactions(ctx context.Context, organizationID, userID string, startDate, endDate time.Time) (*domain.SyncLog, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewValidationFailedError("endDate must not be before startDate")
	}

	log := &domain.SyncLog{
		SyncType:    domain.SyncTypeTransactions,
		PeriodStart: &startDate,
		PeriodEnd:   &endDate,
	}
	return s.runSync(ctx, organizationID, userID, log, func(log *domain.SyncLog) error {
		token, err := s.tokens.GetValidToken(ctx, organizationID)
		if err != nil {
			return err
		}
		lines, err := s.api.ListTransactionLines(ctx, token.AccessToken, token.Division, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to fetch transaction lines from Exact Online: %w", err)
		}
		accounts, err := s.glRepo.MapExternalIDs(ctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to map Exact GL accounts: %w", err)
		}

		now := time.Now()
		batch := make([]domain.ActualEntry, 0, actualBatchSize)
		flush := func() {
			if len(batch) == 0 {
				return
			}
			created, updated, err := s.actualRepo.UpsertActualEntries(ctx, batch)
			if err != nil {
				log.Failed += len(batch)
				log.ErrorMessage = err.Error()
				s.LogError(ctx, err, "Failed to upsert actual entries", slog.Int("batch_size", len(batch)))
			} else {
				log.Created += created
				log.Updated += updated
			}
			batch = batch[:0]
		}

		unknown := 0
		for _, line := range lines {
			log.Processed++
			account, ok := accounts[line.GLAccountID]
			if !ok {
				log.Failed++
				unknown++
				continue
			}
			batch = append(batch, domain.ActualEntry{
				ActualEntryID:  uuid.NewString(),
				OrganizationID: organizationID,
				GLAccountID:    account.GLAccountID,
				ExternalID:     line.ID,
				EntryDate:      line.Date,
				Amount:         line.AmountDC,
				Description:    line.Description,
				EntryNumber:    line.EntryNumber,
				CreatedAt:      now,
			})
			if len(batch) >= actualBatchSize {
				flush()
			}
		}
		flush()

		if unknown > 0 {
			s.GetLogger(ctx).Warn("Transaction lines reference GL accounts that are not synchronized",
				slog.String("organization_id", organizationID),
				slog.Int("count", unknown))
			if log.ErrorMessage == "" {
				log.ErrorMessage = fmt.Sprintf("%d lines reference unknown GL accounts; synchronize GL accounts first", unknown)
			}
		}
		return nil
	})
}

func (s *exactSyncService) ListSyncLogs(ctx context.Context, organizationID, userID string, limit int, nextToken string) ([]domain.SyncLog, string, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, "", err
	}
	if limit <= 0 {
		limit = defaultSyncLogLimit
	}
	if limit > maxSyncLogLimit {
		limit = maxSyncLogLimit
	}

	var cursor *portsrepo.SyncLogCursor
	if nextToken != "" {
		startedAt, id, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", apperrors.NewValidationFailedError("invalid nextToken")
		}
		cursor = &portsrepo.SyncLogCursor{StartedAt: startedAt, SyncLogID: id}
	}

	logs, err := s.syncLogRepo.ListSyncLogs(ctx, organizationID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sync logs", slog.String("organization_id", organizationID))
		return nil, "", fmt.Errorf("failed to list sync logs: %w", err)
	}

	next := ""
	if len(logs) > limit {
		logs = logs[:limit]
		last := logs[limit-1]
		next = pagination.EncodeToken(last.StartedAt, last.SyncLogID)
	}
	return logs, next, nil
}

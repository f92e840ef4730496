package dto

// ExactResponse is the envelope used by every Exact Online endpoint.
// Successful answers carry Message and Data; failures carry Error.
type ExactResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExactOK builds a success envelope.
func ExactOK(message string, data any) ExactResponse {
	return ExactResponse{Status: "success", Message: message, Data: data}
}

// ExactFailed builds an error envelope.
func ExactFailed(message string) ExactResponse {
	return ExactResponse{Status: "error", Error: message}
}

// ExactConnectResponse holds the URL the frontend sends the user to.
type ExactConnectResponse struct {
	AuthorizationURL string `json:"authorizationURL"`
}

// SyncTransactionsRequest is the body of the transaction sync endpoint. Dates are ISO-8601 (YYYY-MM-DD).
type SyncTransactionsRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// ListSyncLogsParams defines query parameters for the sync history.
type ListSyncLogsParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// SyncResult is the data part of a finished sync.
type SyncResult struct {
	SyncLogID string `json:"syncLogID"`
	Status    string `json:"status"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
}

// ListSyncLogsResponse is a page of sync history.
type ListSyncLogsResponse struct {
	SyncLogs  any    `json:"syncLogs"`
	NextToken string `json:"nextToken,omitempty"`
}

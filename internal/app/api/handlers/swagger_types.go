package handlers

import (
	snapsvc "github.com/grupomv/mapaventas/internal/app/service/snapshot"
	"github.com/grupomv/mapaventas/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespRunSummary wraps a generation run summary in the standard envelope.
type RespRunSummary struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    snapsvc.RunSummary       `json:"data"`
}

// RespSnapshotViews wraps a by-date snapshot listing in the standard envelope.
type RespSnapshotViews struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []snapsvc.SnapshotView   `json:"data"`
}

// RespSnapshotList wraps a paginated range listing in the standard envelope.
type RespSnapshotList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    SnapshotListResponse     `json:"data"`
}

// RespComparativo wraps a two-period comparison in the standard envelope.
type RespComparativo struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    snapsvc.ComparativoResult `json:"data"`
}

// RespScanSnapshots wraps the admin listing in the standard envelope.
type RespScanSnapshots struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    ScanSnapshotsResponse    `json:"data"`
}

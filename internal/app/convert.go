package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

func defaultNow() time.Time {
	return time.Now().UTC()
}

func stageCode(id int) string {
	if id == 0 {
		return ""
	}
	if s, ok := workflow.StageByID(id); ok {
		return string(s.Code)
	}
	return fmt.Sprintf("%d", id)
}

// loadCaseErr maps a repository error to CaseNotFound where it applies.
func loadCaseErr(caseID string, err error) error {
	if errors.Is(err, secondary.ErrNotFound) {
		return workflow.WrapError(workflow.CodeCaseNotFound, err, "case %s not found", caseID)
	}
	return fmt.Errorf("failed to load case %s: %w", caseID, err)
}

func recordToCase(r *secondary.CaseRecord) *primary.Case {
	c := &primary.Case{
		ID:            r.ID,
		Stage:         stageCode(r.CurrentStageID),
		PreviousStage: stageCode(r.PreviousStageID),
		Status:        r.Status,
		ApplicantName: r.ApplicantName,
		SellerRef:     r.SellerRef,
		BuyerRef:      r.BuyerRef,
		PlotRef:       r.PlotRef,
		OwnerRef:      r.OwnerRef,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if s, ok := workflow.StageByID(r.CurrentStageID); ok {
		c.StageName = s.Name
	}
	return c
}

func recordToDocument(r *secondary.DocumentRecord) *primary.Document {
	return &primary.Document{
		ID:           r.ID,
		CaseID:       r.CaseID,
		DocType:      r.DocType,
		OriginalSeen: r.OriginalSeen,
		SeenBy:       r.SeenBy,
		SeenAt:       r.SeenAt,
	}
}

func recordToClearance(r *secondary.ClearanceRecord) *primary.Clearance {
	return &primary.Clearance{
		ID:        r.ID,
		CaseID:    r.CaseID,
		Section:   r.Section,
		Status:    r.Status,
		Remarks:   r.Remarks,
		UpdatedBy: r.UpdatedBy,
		ClearedAt: r.ClearedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func recordToReview(r *secondary.ReviewRecord) *primary.Review {
	return &primary.Review{
		ID:         r.ID,
		CaseID:     r.CaseID,
		Section:    r.Section,
		ReviewerID: r.ReviewerID,
		Status:     r.Status,
		Remarks:    r.Remarks,
		ReviewedAt: r.ReviewedAt,
	}
}

func recordToBreakdown(r *secondary.AccountsRecord) *primary.AccountsBreakdown {
	return &primary.AccountsBreakdown{
		CaseID: r.CaseID,
		Fees: primary.FeeHeads{
			TransferFee:        r.TransferFee,
			StampDuty:          r.StampDuty,
			RegistrationFee:    r.RegistrationFee,
			MutationFee:        r.MutationFee,
			ProcessingFee:      r.ProcessingFee,
			DevelopmentCharges: r.DevelopmentCharges,
			Arrears:            r.Arrears,
			Penalty:            r.Penalty,
		},
		TotalAmount:     r.TotalAmount,
		PaidAmount:      r.PaidAmount,
		RemainingAmount: r.RemainingAmount,
		PaymentVerified: r.PaymentVerified,
		Status:          r.Status,
		ObjectionReason: r.ObjectionReason,
		ObjectionAt:     r.ObjectionAt,
		ResolvedAt:      r.ResolvedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func recordToDeed(r *secondary.DeedRecord) *primary.Deed {
	return &primary.Deed{
		ID:           r.ID,
		CaseID:       r.CaseID,
		Witness1:     r.Witness1,
		Witness2:     r.Witness2,
		Content:      r.Content,
		PhotoURL:     r.PhotoURL,
		SignatureURL: r.SignatureURL,
		IsFinalized:  r.IsFinalized,
		ContentHash:  r.ContentHash,
		FinalizedBy:  r.FinalizedBy,
		FinalizedAt:  r.FinalizedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func recordToAuditEntry(r *secondary.AuditRecord) *primary.AuditEntry {
	return &primary.AuditEntry{
		ID:        r.ID,
		CaseID:    r.CaseID,
		ActorID:   r.ActorID,
		ActorRole: r.ActorRole,
		Action:    r.Action,
		FromStage: stageCode(r.FromStageID),
		ToStage:   stageCode(r.ToStageID),
		Detail:    r.Detail,
		IPAddress: r.IPAddress,
		UserAgent: r.UserAgent,
		CreatedAt: r.CreatedAt,
	}
}

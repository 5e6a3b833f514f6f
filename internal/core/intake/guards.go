// Package intake contains the pure business logic for case intake: the
// required document vocabulary and the case-creation guard.
package intake

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// Required document types, in the order they are checked.
const (
	DocSaleDeed           = "SALE_DEED"
	DocCNICSeller         = "CNIC_SELLER"
	DocCNICBuyer          = "CNIC_BUYER"
	DocAllotmentLetter    = "ALLOTMENT_LETTER"
	DocNOC                = "NOC"
	DocPropertyTaxReceipt = "PROPERTY_TAX_RECEIPT"
	DocSitePlan           = "SITE_PLAN"
)

var requiredDocuments = []string{
	DocSaleDeed,
	DocCNICSeller,
	DocCNICBuyer,
	DocAllotmentLetter,
	DocNOC,
	DocPropertyTaxReceipt,
	DocSitePlan,
}

// RequiredDocuments returns the document types every case must carry.
func RequiredDocuments() []string {
	out := make([]string, len(requiredDocuments))
	copy(out, requiredDocuments)
	return out
}

// NormalizeDocumentType upper-cases and trims a document type.
func NormalizeDocumentType(docType string) string {
	return strings.ToUpper(strings.TrimSpace(docType))
}

// IsKnownDocumentType reports whether docType is in the required set.
func IsKnownDocumentType(docType string) bool {
	docType = NormalizeDocumentType(docType)
	for _, d := range requiredDocuments {
		if d == docType {
			return true
		}
	}
	return false
}

// DocumentStatus is the minimal document info needed to evaluate intake.
type DocumentStatus struct {
	DocType      string
	OriginalSeen bool
}

// Completeness lists what is still outstanding for intake.
type Completeness struct {
	Missing []string
	NotSeen []string
}

// Complete reports whether nothing is outstanding.
func (c Completeness) Complete() bool {
	return len(c.Missing) == 0 && len(c.NotSeen) == 0
}

// Evaluate compares recorded documents against the required set.
// Both lists come back in required-document order.
func Evaluate(docs []DocumentStatus) Completeness {
	byType := make(map[string]DocumentStatus, len(docs))
	for _, d := range docs {
		byType[NormalizeDocumentType(d.DocType)] = d
	}

	var c Completeness
	for _, req := range requiredDocuments {
		d, ok := byType[req]
		switch {
		case !ok:
			c.Missing = append(c.Missing, req)
		case !d.OriginalSeen:
			c.NotSeen = append(c.NotSeen, req)
		}
	}
	return c
}

// CreateCaseContext provides context for case creation guards.
type CreateCaseContext struct {
	ApplicantName string
	SellerRef     string
	BuyerRef      string
	PlotRef       string
}

// CanCreateCase evaluates whether a case can be opened.
// Rules:
// - Applicant, seller, buyer and plot must be given
// - Seller and buyer must differ
func CanCreateCase(ctx CreateCaseContext) GuardResult {
	var missing []string
	if strings.TrimSpace(ctx.ApplicantName) == "" {
		missing = append(missing, "applicant")
	}
	if strings.TrimSpace(ctx.SellerRef) == "" {
		missing = append(missing, "seller")
	}
	if strings.TrimSpace(ctx.BuyerRef) == "" {
		missing = append(missing, "buyer")
	}
	if strings.TrimSpace(ctx.PlotRef) == "" {
		missing = append(missing, "plot")
	}
	if len(missing) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot create case: missing %s", strings.Join(missing, ", ")),
		}
	}

	if strings.EqualFold(strings.TrimSpace(ctx.SellerRef), strings.TrimSpace(ctx.BuyerRef)) {
		return GuardResult{
			Allowed: false,
			Reason:  "cannot create case: seller and buyer must be different parties",
		}
	}

	return GuardResult{Allowed: true}
}

// RecordDocumentContext provides context for document recording guards.
type RecordDocumentContext struct {
	CaseID    string
	DocType   string
	CaseStage string
}

// CanRecordDocument evaluates whether a document can be recorded on a case.
// Rules:
// - Document type must be one of the required types
// - Documents are only recorded while the case is SUBMITTED
func CanRecordDocument(ctx RecordDocumentContext) GuardResult {
	if !IsKnownDocumentType(ctx.DocType) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown document type %q (expected one of: %s)", ctx.DocType, strings.Join(requiredDocuments, ", ")),
		}
	}
	if ctx.CaseStage != "SUBMITTED" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only record documents while case %s is SUBMITTED (current stage: %s)", ctx.CaseID, ctx.CaseStage),
		}
	}

	return GuardResult{Allowed: true}
}

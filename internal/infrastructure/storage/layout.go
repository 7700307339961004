package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// The on-disk layout is deterministic so paths never need a lookup table:
//
//	client_{id}_{business}/
//	    kyc/
//	    payments/{year}/{mm_month}/
//	    documents/{year}/{quarter}/{category}/

var (
	nonWordRun = regexp.MustCompile(`[^a-z0-9]+`)
	monthSlugs = [...]string{
		"01_january", "02_february", "03_march", "04_april",
		"05_may", "06_june", "07_july", "08_august",
		"09_september", "10_october", "11_november", "12_december",
	}
	quarterSlugs = [...]string{"q1_jan_mar", "q2_apr_jun", "q3_jul_sep", "q4_oct_dec"}
)

// SanitizeName lowercases a name and collapses every non-alphanumeric run
// into a single underscore.
func SanitizeName(name string) string {
	s := nonWordRun.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(s, "_")
}

// ClientRoot is the top-level directory of one client's files.
func ClientRoot(clientID uint, businessName string) string {
	return fmt.Sprintf("client_%d_%s", clientID, SanitizeName(businessName))
}

// KYCDir holds a client's verification documents.
func KYCDir(clientRoot string) string {
	return path.Join(clientRoot, "kyc")
}

// MonthSlug returns the zero-padded month directory name, e.g. "03_march".
func MonthSlug(m time.Month) string {
	return monthSlugs[int(m)-1]
}

// QuarterSlug returns the quarter directory name for a month, e.g. "q1_jan_mar".
func QuarterSlug(m time.Month) string {
	return quarterSlugs[(int(m)-1)/3]
}

// PaymentDir buckets payment receipts by year and month.
func PaymentDir(clientRoot string, at time.Time) string {
	return path.Join(clientRoot, "payments", fmt.Sprintf("%d", at.Year()), MonthSlug(at.Month()))
}

// DocumentDir buckets vault documents by year, quarter and category.
func DocumentDir(clientRoot string, at time.Time, category string) string {
	return path.Join(clientRoot, "documents", fmt.Sprintf("%d", at.Year()), QuarterSlug(at.Month()), category)
}

// UniqueFilename builds a collision-resistant filename from the original name,
// an upload timestamp and a random token: {base}_{YYYYMMDD_HHMMSS}_{token}{ext}.
func UniqueFilename(original string, at time.Time, token string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := SanitizeName(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s_%s%s", base, at.Format("20060102_150405"), token, ext)
}

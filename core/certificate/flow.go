package certificate

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/course"
)

var (
	ErrBusy = errors.New("certificate generation already in progress")

	writeFileFunc = os.WriteFile // mockable
)

// API is the backend surface the certificate flow needs.
type API interface {
	CheckEligibility(ctx context.Context, courseID string) (course.Eligibility, error)
	Generate(ctx context.Context, courseID string) (Generated, error)
	DownloadPDF(ctx context.Context, id string) ([]byte, error)
	ListForUser(ctx context.Context, userID string) ([]Certificate, error)
	Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error)
}

// Flow checks eligibility, generates certificates and saves their PDF.
type Flow struct {
	api    API
	logger core.Logger
	dir    string

	mu   sync.Mutex
	busy bool
}

func NewFlow(api API, logger core.Logger, downloadDir string) *Flow {
	return &Flow{api: api, logger: logger, dir: downloadDir}
}

// CheckEligibility reports whether the user may get the course certificate.
// Failures are logged and reported as not eligible.
func (f *Flow) CheckEligibility(ctx context.Context, courseID string) course.Eligibility {
	el, err := f.api.CheckEligibility(ctx, courseID)
	if err != nil {
		f.logger.Warn(fmt.Sprintf("checking certificate eligibility of course %s: %v", courseID, err), err)
		return course.Eligibility{}
	}
	return el
}

// Busy reports whether a generation is in progress.
func (f *Flow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *Flow) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *Flow) release() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

// Generate requests the course certificate, downloads its PDF and writes it into
// the download directory. It returns the certificate and the path of the file.
func (f *Flow) Generate(ctx context.Context, courseID string) (Certificate, string, error) {
	if !f.acquire() {
		return Certificate{}, "", ErrBusy
	}
	defer f.release()

	gen, err := f.api.Generate(ctx, courseID)
	if err != nil {
		return Certificate{}, "", errors.Wrap(err, "generating certificate")
	}
	cert := gen.Resolve()
	if cert.PDFID() == "" {
		return cert, "", errors.New("generated certificate has no id")
	}

	pdf, err := f.api.DownloadPDF(ctx, cert.PDFID())
	if err != nil {
		return cert, "", errors.Wrap(err, "downloading certificate")
	}

	path := filepath.Join(f.dir, cert.FileName())
	if err := writeFileFunc(path, pdf, 0o644); err != nil {
		return cert, "", errors.Wrapf(err, "saving %s", path)
	}
	f.logger.Info(fmt.Sprintf("certificate %s saved to %s", cert.CertificateID, path))
	return cert, path, nil
}

// List returns the certificates of the user.
func (f *Flow) List(ctx context.Context, userID string) ([]Certificate, error) {
	if userID == "" {
		return nil, core.ErrAuthMissing
	}
	certs, err := f.api.ListForUser(ctx, userID)
	return certs, errors.Wrap(err, "listing certificates")
}

// Verify checks a certificate by id or verification code. An unknown
// certificate is an invalid result, not an error.
func (f *Flow) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	res, err := f.api.Verify(ctx, req)
	if err != nil {
		if apiErr, ok := errors.Cause(err).(*core.APIError); ok && apiErr.Status == http.StatusNotFound {
			return VerifyResult{Valid: false, Message: apiErr.Message}, nil
		}
		return VerifyResult{}, errors.Wrap(err, "verifying certificate")
	}
	return res, nil
}

package scoring

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SimilarityClient is the slice of the inference client the remote scorer
// needs: one request pairing the student's school against the offer's school
// list, answered with one score per input sentence.
type SimilarityClient interface {
	Similarity(ctx context.Context, source string, sentences []string) ([]float64, error)
}

// Remote delegates scoring to a sentence-embedding inference service. An
// offer is accepted when any returned score reaches the configured threshold.
// Acceptance is binary: an accepted offer scores 1.0, a rejected one 0.0.
//
// The default threshold of 1.0 is almost certainly miscalibrated for
// embedding similarities, which are typically bounded by 1.0; it is kept
// configurable and never rescaled here.
type Remote struct {
	client    SimilarityClient
	threshold float64
}

// NewRemote creates the remote-inference scorer.
func NewRemote(client SimilarityClient, threshold float64) *Remote {
	return &Remote{client: client, threshold: threshold}
}

// Name identifies the scorer in logs and results.
func (*Remote) Name() string { return "remote-inference" }

// Score issues one inference round trip for the offer. Empty inputs on
// either side short-circuit to 0.0 without a network call, matching the
// local scorer's degraded-record policy. Errors are returned to the caller
// so the engine can isolate the failure to this offer.
func (r *Remote) Score(ctx context.Context, studentSchools, offerSchools []string) (float64, error) {
	if len(studentSchools) == 0 || len(offerSchools) == 0 {
		return 0.0, nil
	}

	// The student's affiliation is a singleton in practice; the first entry
	// is the source sentence.
	source := studentSchools[0]

	scores, err := r.client.Similarity(ctx, source, offerSchools)
	if err != nil {
		return 0.0, err
	}

	for _, score := range scores {
		if score >= r.threshold {
			return 1.0, nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"component": "scoring",
		"scorer":    r.Name(),
		"threshold": r.threshold,
	}).Debug("No returned score reached the acceptance threshold")

	return 0.0, nil
}

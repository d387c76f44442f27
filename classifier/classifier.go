// SPDX-License-Identifier: GPL-3.0-only

// Package classifier abstracts where recognition runs. Local is the default
// in-process implementation; Remote calls a plmobile server; Fallback tries
// one and delegates to the other on any failure.
package classifier

import (
	"context"
	"fmt"

	"plmobile-server/commons"
	"plmobile-server/recognizer"
)

type Classifier interface {
	Recognize(ctx context.Context, input string) (recognizer.RecognitionResult, error)
	RecognizeBatch(ctx context.Context, inputs []string) ([]recognizer.RecognitionResult, error)
}

type Local struct {
	Recognizer *recognizer.Recognizer
}

func NewLocal(r *recognizer.Recognizer) *Local {
	return &Local{Recognizer: r}
}

func (l *Local) Recognize(_ context.Context, input string) (recognizer.RecognitionResult, error) {
	return l.Recognizer.Recognize(input), nil
}

func (l *Local) RecognizeBatch(_ context.Context, inputs []string) ([]recognizer.RecognitionResult, error) {
	return l.Recognizer.RecognizeBatch(inputs), nil
}

type Fallback struct {
	Primary   Classifier
	Secondary Classifier
}

func NewFallback(primary, secondary Classifier) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) Recognize(ctx context.Context, input string) (recognizer.RecognitionResult, error) {
	result, err := f.Primary.Recognize(ctx, input)
	if err == nil {
		return result, nil
	}
	commons.Logger.Warnf("Primary classifier failed, falling back: %v", err)
	return f.Secondary.Recognize(ctx, input)
}

func (f *Fallback) RecognizeBatch(ctx context.Context, inputs []string) ([]recognizer.RecognitionResult, error) {
	results, err := f.Primary.RecognizeBatch(ctx, inputs)
	if err == nil && len(results) != len(inputs) {
		err = fmt.Errorf("primary classifier returned %d results for %d inputs", len(results), len(inputs))
	}
	if err == nil {
		return results, nil
	}
	commons.Logger.Warnf("Primary classifier batch failed, falling back: %v", err)
	return f.Secondary.RecognizeBatch(ctx, inputs)
}

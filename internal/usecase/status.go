package usecase

import (
	"context"
	"os"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
	domsvc "Elysian/internal/domain/service"
)

// StatusUseCase reports whether the engine's collaborators are usable:
// storage reachable, metadata present, predictor producing output.
type StatusUseCase struct {
	store     domrepo.BarStore
	metadata  domrepo.MetadataStore
	predictor domsvc.Predictor
	symbols   []string
	lookback  int
	tf        domrepo.Timeframe
	quality   float64
}

func NewStatusUseCase(
	store domrepo.BarStore,
	metadata domrepo.MetadataStore,
	predictor domsvc.Predictor,
	symbols []string,
	lookback int,
	tf domrepo.Timeframe,
	quality float64,
) *StatusUseCase {
	return &StatusUseCase{
		store:     store,
		metadata:  metadata,
		predictor: predictor,
		symbols:   symbols,
		lookback:  lookback,
		tf:        tf,
		quality:   quality,
	}
}

// Check gathers the setup status. Individual failures are reported in
// the Errors map rather than aborting the check.
func (uc *StatusUseCase) Check(ctx context.Context) *models.SetupStatus {
	st := &models.SetupStatus{
		ArtifactsDir: uc.metadata.Dir(),
		Errors:       map[string]string{},
	}

	if info, err := os.Stat(st.ArtifactsDir); err == nil && info.IsDir() {
		st.ArtifactsPresent = true
	}

	if uc.metadata.Exists() {
		st.MetadataPresent = true
		md, err := uc.metadata.Read()
		if err != nil {
			st.Errors["metadata"] = err.Error()
		} else if md != nil {
			st.TrainingDate = md.TrainingDate
			st.Version = md.Version
		}
	}

	if err := uc.store.Health(ctx); err != nil {
		st.Errors["storage"] = err.Error()
	}

	if len(uc.symbols) > 0 {
		sym := uc.symbols[0]
		bars, err := uc.store.GetLatestNBars(ctx, sym, uc.lookback, uc.tf)
		if err != nil {
			st.Errors["smoke"] = err.Error()
		} else {
			out := uc.predictor.BatchPredict(map[string][]models.Bar{sym: bars}, uc.quality)
			if p := out[sym]; p != nil {
				st.SmokePrediction = p
			} else {
				st.Errors["smoke"] = "no usable bars for " + sym
			}
		}
	}

	if len(st.Errors) == 0 {
		st.Errors = nil
	}
	return st
}

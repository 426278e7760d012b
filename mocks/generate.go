package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-insight/pkg/marketdata/provider DataProvider
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/rxtech-lab/argo-insight/pkg/marketdata/writer AnalysisWriter
//go:generate mockgen -destination=./mock_prediction.go -package=mocks github.com/rxtech-lab/argo-insight/internal/prediction Predictor,TrainingFeed,Model

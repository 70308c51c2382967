// Standard attribute keys for mlkit log records.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so records from different models can be filtered the
// same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type.
	// Examples: "Perceptron", "LinearRegressor", "MLP"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "train", "predict", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) without the bias.
	FeaturesKey = "data.features"

	// TargetsKey is the number of target columns.
	TargetsKey = "data.targets"

	// TopologyKey holds the layer widths of an MLP.
	TopologyKey = "model.topology"

	// PathKey is a file path read or written by a loader or chart.
	PathKey = "data.path"
)

// Training progress and metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	AccuracyKey = "metrics.accuracy"
	LossKey     = "metrics.loss"

	// MistakesKey is the number of perceptron updates in one epoch.
	MistakesKey = "metrics.mistakes"

	IterationKey = "training.iteration"
	EpochKey     = "training.epoch"

	// ConvergedKey reports whether early stopping triggered.
	ConvergedKey = "training.converged"
)

// Prediction context.
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// ClassKey is the class index of a one-vs-rest sub-model or an argmax result.
	ClassKey = "preds.class"
)

// Error context.
const (
	ErrorCodeKey = "error.code"
	ErrorTypeKey = "error.type"

	// StacktraceKey is populated by Error when the first field is an error
	// carrying a cockroachdb stack trace.
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters.
const (
	LearningRateKey = "hyperparams.learning_rate"
	MaxEpochsKey    = "hyperparams.max_epochs"
	IterationsKey   = "hyperparams.iterations"
	ShuffleKey      = "hyperparams.shuffle"

	// RandomSeedKey records the seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationTrain   = "train"
	OperationPredict = "predict"
	OperationLoad    = "load"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidTopology   = "INVALID_TOPOLOGY"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)

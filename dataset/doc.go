// Package dataset holds labelled time-series samples for classification.
//
// A Dataset stores samples in insertion order, each a label plus a T×D
// matrix (T time steps, D dimensions), and keeps a ClassTracker entry per
// label in first-seen order. Label 0 is reserved for the null class and is
// rejected unless AllowNullClass is set.
//
// Load and Save read and write the GRT labelled time-series text format:
//
//	GRT_LABELLED_TIME_SERIES_CLASSIFICATION_DATA_FILE_V1.0
//	DatasetName: gestures
//	InfoText: two-axis swipes
//	NumDimensions: 2
//	TotalNumTrainingExamples: 1
//	NumberOfClasses: 1
//	ClassIDsAndCounters:
//	1	1
//	UseExternalRanges: 0
//	LabelledTimeSeriesTrainingData:
//	************TIME_SERIES************
//	ClassID: 1
//	TimeSeriesLength: 2
//	TimeSeriesData:
//	0.1 0.2
//	0.3 0.4
package dataset

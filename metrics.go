// Copyright 2024 The mdfind Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mdfind

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricFilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdfind_files_scanned_total",
		Help: "Number of candidate files evaluated against a query.",
	})
	metricFilesMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdfind_files_matched_total",
		Help: "Number of files that satisfied a query.",
	})
	metricWalkErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mdfind_walk_errors_total",
		Help: "Number of I/O errors encountered while walking.",
	})
)

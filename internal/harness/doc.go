// Package harness runs scripted conversations against the full question
// pipeline.
//
// A scenario seeds a partition of movement records, then plays a list of
// turns. Each turn carries the parameter record the language model would
// have returned for the question, so runs are deterministic and need no
// network access.
//
// # Scenario Format
//
//	name: recife_volume
//	description: "Passenger total for one airport and year"
//	data:
//	  - {airport: SBRF, year: 2023, month: 1, operator: AZU, passengers: 12000}
//	turns:
//	  - question: "Quantos passageiros em Recife em 2023?"
//	    parsed: {aeroporto: Recife, ano: 2023}
//	    expect:
//	      kind: answer
//	      shape: volume
//	      contains: ["**12.000**"]
//	assertions:
//	  - type: history_count
//	    count: 1
//	  - type: metric_count
//	    shape: volume
//	    outcome: answer
//	    count: 1
//
// A turn without parsed behaves like a model that returned nothing usable.
// A scenario with no_parser set runs without a question parser at all.
//
// # Assertion Types
//
//   - history_count: number of turns in the conversation log
//   - kind_count: number of replies of the given kind
//   - metric_count: value of airq_queries_total for shape and outcome
//
// # Golden Transcripts
//
// RunWithGolden compares the transcript of questions and replies against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness

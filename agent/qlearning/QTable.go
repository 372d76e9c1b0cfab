package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/utils/matutils"
)

// QTable stores action values in a dense states x actions matrix.
//
// Row i holds the values of each action in state i, in
// environment.Actions order. A state is materialized by EnsureState;
// until then its row is all zeros and it carries no information.
type QTable struct {
	values       *mat.Dense
	materialized []bool
	count        int
}

// NewQTable returns a new, empty QTable
func NewQTable(states, actions int) *QTable {
	return &QTable{
		values:       mat.NewDense(states, actions, nil),
		materialized: make([]bool, states),
	}
}

// EnsureState materializes state so that all of its action values exist,
// defaulted to 0. Calling EnsureState on a materialized state does
// nothing.
func (q *QTable) EnsureState(state int) {
	if q.materialized[state] {
		return
	}
	q.values.SetRow(state, make([]float64, environment.NumActions))
	q.materialized[state] = true
	q.count++
}

// Materialized returns whether state has been materialized
func (q *QTable) Materialized(state int) bool {
	return q.materialized[state]
}

// Len returns the number of materialized states
func (q *QTable) Len() int {
	return q.count
}

// Empty returns whether no state has been materialized
func (q *QTable) Empty() bool {
	return q.count == 0
}

// At returns the value of action in state
func (q *QTable) At(state int, action environment.Action) float64 {
	return q.values.At(state, int(action))
}

// Set sets the value of action in state, materializing state first
func (q *QTable) Set(state int, action environment.Action, v float64) {
	q.EnsureState(state)
	q.values.Set(state, int(action), v)
}

// ActionValues returns a copy of the values of each action in state
func (q *QTable) ActionValues(state int) []float64 {
	return mat.Row(nil, state, q.values)
}

// Max returns the maximum action value in state
func (q *QTable) Max(state int) float64 {
	return matutils.RowMax(q.values, state)
}

// Greedy returns the first maximal action in state
func (q *QTable) Greedy(state int) environment.Action {
	return environment.Actions[matutils.MaxRow(q.values, state)]
}

// StateValues returns the maximum action value of each materialized
// state. States which were never materialized are omitted.
func (q *QTable) StateValues() map[int]float64 {
	values := make(map[int]float64, q.count)
	for state, ok := range q.materialized {
		if ok {
			values[state] = q.Max(state)
		}
	}
	return values
}

// Clone returns a deep copy of the QTable
func (q *QTable) Clone() *QTable {
	var values mat.Dense
	values.CloneFrom(q.values)

	materialized := make([]bool, len(q.materialized))
	copy(materialized, q.materialized)

	return &QTable{&values, materialized, q.count}
}

// CopyFrom overwrites the table with the values and materialized
// states of src, which must have the same dimensions
func (q *QTable) CopyFrom(src *QTable) {
	q.values.Copy(src.values)
	copy(q.materialized, src.materialized)
	q.count = src.count
}

// Reset discards every action value and materialized state
func (q *QTable) Reset() {
	q.values.Zero()
	for i := range q.materialized {
		q.materialized[i] = false
	}
	q.count = 0
}

// Dims returns the number of states and actions of the table
func (q *QTable) Dims() (states, actions int) {
	return q.values.Dims()
}

// Matrix returns a read-only view of the underlying action values
func (q *QTable) Matrix() mat.Matrix {
	return q.values
}

func (q *QTable) String() string {
	return fmt.Sprintf("QTable | States: %d/%d\n%v", q.count,
		len(q.materialized), matutils.Format(q.values))
}

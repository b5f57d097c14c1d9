package autodiff

import "fmt"

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// TopologicalOrder returns every node id with operands before their consumers.
//
// It is a depth-first post-order walk started from each id in ascending order,
// visiting operands in argument order. The walk uses an explicit stack, and a
// node reached again while still on the stack is reported as ErrCycle.
func (g *Graph) TopologicalOrder() ([]int, error) {
	state := make([]visitState, len(g.nodes))
	order := make([]int, 0, len(g.nodes))

	type frame struct {
		id   int
		next int // index of the next operand to visit
	}
	var stack []frame

	for root := range g.nodes {
		if state[root] != unvisited {
			continue
		}
		state[root] = inProgress
		stack = append(stack[:0], frame{id: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			operands := g.nodes[top.id].Operands

			if top.next < len(operands) {
				child := operands[top.next]
				top.next++
				switch state[child] {
				case unvisited:
					state[child] = inProgress
					stack = append(stack, frame{id: child})
				case inProgress:
					return nil, fmt.Errorf("%w: node %d depends on itself through node %d", ErrCycle, child, top.id)
				}
				continue
			}

			state[top.id] = done
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return order, nil
}

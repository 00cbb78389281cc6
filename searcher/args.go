package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant squared

var DefaultExploration = math.Sqrt(CSquared)

// Rewards from the perspective of the player who moved into a node
const Win = 1.0
const Loss = -Win
const Draw = 0.0

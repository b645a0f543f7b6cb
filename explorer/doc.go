/*
Package explorer implements the incremental exploration engine of a micromouse robot.

The engine keeps what the robot has learned about a fixed-size walled grid: which walls are
known, the best known number of steps from the start to each cell, and a frontier of cells
still waiting to be expanded. Knowledge grows one cell at a time as the robot reports its
sensor readings, and the next cell to visit is picked with a best-first approximation that
needs no dynamic allocation.

The driving loop is: Update (report the walls around the occupied cell), Expand (queue the
reachable neighbors with relaxed costs), Next (pop the most promising frontier cell), move,
and repeat until Next reports that nothing is left.

Each cell stores only its own "up" and "right" walls. The "down" and "left" walls of a cell
belong to the neighbors below and to the left, so every wall has exactly one owner.

Build tags:
  - manhattan: use the Manhattan distance as the goal heuristic instead of Chebyshev.
  - explorerdebug: panic on contract violations and frontier overflow instead of
    returning errors.
*/
package explorer

package roster

// KeeperCost returns this year's keeper price for a player who cost lastYearCost
// The raise is 10% rounded half-up, with a $1 minimum
func KeeperCost(lastYearCost int) int {
	if lastYearCost < 0 {
		lastYearCost = 0
	}
	increase := (lastYearCost + 5) / 10
	if increase > 0 {
		return lastYearCost + increase
	}
	return lastYearCost + 1
}

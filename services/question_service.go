// services/question_service.go - Random arithmetic question generation
package services

import (
	"fmt"
	"math/rand"

	"github.com/superbmt/zap-zap-game/models"
)

// GenerateQuestion produces a random arithmetic problem for the given
// difficulty tier. Unknown tiers behave like easy. Subtraction operands are
// swapped so the answer is never negative, and division problems are built
// from the answer so they always divide evenly.
func GenerateQuestion(difficulty models.Difficulty) models.Question {
	var num1, num2, answer int
	var operator string

	switch difficulty {
	case models.DifficultyMedium:
		operator = pickOperator()
		switch operator {
		case "+", "-":
			num1, num2, answer = addOrSubtract(operator, 10, 99)
		case "×":
			num1 = randRange(2, 10)
			num2 = randRange(2, 10)
			answer = num1 * num2
		case "÷":
			num1, num2, answer = exactDivision(2, 11, 2, 9)
		}

	case models.DifficultyHard:
		operator = pickOperator()
		switch operator {
		case "+", "-":
			num1, num2, answer = addOrSubtract(operator, 100, 999)
		case "×":
			num1 = randRange(10, 99)
			num2 = randRange(2, 10)
			answer = num1 * num2
		case "÷":
			num1, num2, answer = exactDivision(5, 54, 2, 16)
		}

	case models.DifficultyUltra:
		operator = pickOperator()
		switch operator {
		case "+", "-":
			num1, num2, answer = addOrSubtract(operator, 1000, 9999)
		case "×":
			num1 = randRange(10, 99)
			num2 = randRange(10, 99)
			answer = num1 * num2
		case "÷":
			num1, num2, answer = exactDivision(10, 209, 5, 29)
		}

	default: // easy, and any unknown tier
		if rand.Intn(2) == 0 {
			operator = "+"
		} else {
			operator = "-"
		}
		num1, num2, answer = addOrSubtract(operator, 0, 9)
	}

	return models.Question{
		Prompt: fmt.Sprintf("%d %s %d = ?", num1, operator, num2),
		Answer: answer,
	}
}

var operators = []string{"+", "-", "×", "÷"}

func pickOperator() string {
	return operators[rand.Intn(len(operators))]
}

// randRange returns a uniform random integer in [lo, hi].
func randRange(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

// addOrSubtract draws both operands from [lo, hi], swapping them for
// subtraction when needed to keep the answer non-negative.
func addOrSubtract(operator string, lo, hi int) (num1, num2, answer int) {
	num1 = randRange(lo, hi)
	num2 = randRange(lo, hi)
	if operator == "-" {
		if num1 < num2 {
			num1, num2 = num2, num1
		}
		return num1, num2, num1 - num2
	}
	return num1, num2, num1 + num2
}

// exactDivision draws the answer and divisor first, so the dividend is
// always an exact multiple.
func exactDivision(ansLo, ansHi, divLo, divHi int) (num1, num2, answer int) {
	answer = randRange(ansLo, ansHi)
	num2 = randRange(divLo, divHi)
	num1 = answer * num2
	return num1, num2, answer
}

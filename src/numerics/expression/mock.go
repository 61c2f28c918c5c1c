package expression

//go:generate mockgen -source=expression.go -destination=mock/mock_expression.gen.go Evaluator

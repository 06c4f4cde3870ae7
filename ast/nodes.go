package ast

import "math/big"

// NodeType identifies the concrete variant of a Node.
type NodeType uint8

const (
	UnknownNodeType NodeType = iota
	AliasNodeType
	AlternationPatternNodeType
	AndNodeType
	AndWriteNodeType
	ArgumentsNodeType
	ArrayNodeType
	ArrayPatternNodeType
	AssocNodeType
	AssocSplatNodeType
	BackReferenceReadNodeType
	BeginNodeType
	BlockArgumentNodeType
	BlockLocalVariableNodeType
	BlockNodeType
	BlockParameterNodeType
	BlockParametersNodeType
	BreakNodeType
	CallNodeType
	CapturePatternNodeType
	CaseNodeType
	ClassNodeType
	ClassVariableReadNodeType
	ClassVariableTargetNodeType
	ClassVariableWriteNodeType
	ConstantPathNodeType
	ConstantPathTargetNodeType
	ConstantPathWriteNodeType
	ConstantReadNodeType
	ConstantTargetNodeType
	ConstantWriteNodeType
	DefNodeType
	DefinedNodeType
	ElseNodeType
	EmbeddedStatementsNodeType
	EmbeddedVariableNodeType
	EnsureNodeType
	FalseNodeType
	FindPatternNodeType
	FloatNodeType
	ForNodeType
	ForwardingArgumentsNodeType
	ForwardingParameterNodeType
	ForwardingSuperNodeType
	GlobalVariableReadNodeType
	GlobalVariableTargetNodeType
	GlobalVariableWriteNodeType
	HashNodeType
	HashPatternNodeType
	IfNodeType
	ImaginaryNodeType
	InNodeType
	InstanceVariableReadNodeType
	InstanceVariableTargetNodeType
	InstanceVariableWriteNodeType
	IntegerNodeType
	InterpolatedRegularExpressionNodeType
	InterpolatedStringNodeType
	InterpolatedSymbolNodeType
	InterpolatedXStringNodeType
	KeywordHashNodeType
	KeywordParameterNodeType
	KeywordRestParameterNodeType
	LambdaNodeType
	LocalVariableReadNodeType
	LocalVariableTargetNodeType
	LocalVariableWriteNodeType
	MatchPredicateNodeType
	MatchRequiredNodeType
	MatchWriteNodeType
	MissingNodeType
	ModuleNodeType
	MultiWriteNodeType
	NextNodeType
	NilNodeType
	NoKeywordsParameterNodeType
	NumberedReferenceReadNodeType
	OperatorWriteNodeType
	OptionalParameterNodeType
	OrNodeType
	OrWriteNodeType
	ParametersNodeType
	ParenthesesNodeType
	PinnedExpressionNodeType
	PinnedVariableNodeType
	PostExecutionNodeType
	PreExecutionNodeType
	ProgramNodeType
	RangeNodeType
	RationalNodeType
	RedoNodeType
	RegularExpressionNodeType
	RequiredDestructuredParameterNodeType
	RequiredParameterNodeType
	RescueModifierNodeType
	RescueNodeType
	RestParameterNodeType
	RetryNodeType
	ReturnNodeType
	SelfNodeType
	SingletonClassNodeType
	SourceEncodingNodeType
	SourceFileNodeType
	SourceLineNodeType
	SplatNodeType
	StatementsNodeType
	StringConcatNodeType
	StringNodeType
	SuperNodeType
	SymbolNodeType
	TrueNodeType
	UndefNodeType
	UnlessNodeType
	UntilNodeType
	WhenNodeType
	WhileNodeType
	XStringNodeType
	YieldNodeType
)

var nodeTypeNames = [...]string{
	UnknownNodeType: "Unknown",
	AliasNodeType: "AliasNode",
	AlternationPatternNodeType: "AlternationPatternNode",
	AndNodeType: "AndNode",
	AndWriteNodeType: "AndWriteNode",
	ArgumentsNodeType: "ArgumentsNode",
	ArrayNodeType: "ArrayNode",
	ArrayPatternNodeType: "ArrayPatternNode",
	AssocNodeType: "AssocNode",
	AssocSplatNodeType: "AssocSplatNode",
	BackReferenceReadNodeType: "BackReferenceReadNode",
	BeginNodeType: "BeginNode",
	BlockArgumentNodeType: "BlockArgumentNode",
	BlockLocalVariableNodeType: "BlockLocalVariableNode",
	BlockNodeType: "BlockNode",
	BlockParameterNodeType: "BlockParameterNode",
	BlockParametersNodeType: "BlockParametersNode",
	BreakNodeType: "BreakNode",
	CallNodeType: "CallNode",
	CapturePatternNodeType: "CapturePatternNode",
	CaseNodeType: "CaseNode",
	ClassNodeType: "ClassNode",
	ClassVariableReadNodeType: "ClassVariableReadNode",
	ClassVariableTargetNodeType: "ClassVariableTargetNode",
	ClassVariableWriteNodeType: "ClassVariableWriteNode",
	ConstantPathNodeType: "ConstantPathNode",
	ConstantPathTargetNodeType: "ConstantPathTargetNode",
	ConstantPathWriteNodeType: "ConstantPathWriteNode",
	ConstantReadNodeType: "ConstantReadNode",
	ConstantTargetNodeType: "ConstantTargetNode",
	ConstantWriteNodeType: "ConstantWriteNode",
	DefNodeType: "DefNode",
	DefinedNodeType: "DefinedNode",
	ElseNodeType: "ElseNode",
	EmbeddedStatementsNodeType: "EmbeddedStatementsNode",
	EmbeddedVariableNodeType: "EmbeddedVariableNode",
	EnsureNodeType: "EnsureNode",
	FalseNodeType: "FalseNode",
	FindPatternNodeType: "FindPatternNode",
	FloatNodeType: "FloatNode",
	ForNodeType: "ForNode",
	ForwardingArgumentsNodeType: "ForwardingArgumentsNode",
	ForwardingParameterNodeType: "ForwardingParameterNode",
	ForwardingSuperNodeType: "ForwardingSuperNode",
	GlobalVariableReadNodeType: "GlobalVariableReadNode",
	GlobalVariableTargetNodeType: "GlobalVariableTargetNode",
	GlobalVariableWriteNodeType: "GlobalVariableWriteNode",
	HashNodeType: "HashNode",
	HashPatternNodeType: "HashPatternNode",
	IfNodeType: "IfNode",
	ImaginaryNodeType: "ImaginaryNode",
	InNodeType: "InNode",
	InstanceVariableReadNodeType: "InstanceVariableReadNode",
	InstanceVariableTargetNodeType: "InstanceVariableTargetNode",
	InstanceVariableWriteNodeType: "InstanceVariableWriteNode",
	IntegerNodeType: "IntegerNode",
	InterpolatedRegularExpressionNodeType: "InterpolatedRegularExpressionNode",
	InterpolatedStringNodeType: "InterpolatedStringNode",
	InterpolatedSymbolNodeType: "InterpolatedSymbolNode",
	InterpolatedXStringNodeType: "InterpolatedXStringNode",
	KeywordHashNodeType: "KeywordHashNode",
	KeywordParameterNodeType: "KeywordParameterNode",
	KeywordRestParameterNodeType: "KeywordRestParameterNode",
	LambdaNodeType: "LambdaNode",
	LocalVariableReadNodeType: "LocalVariableReadNode",
	LocalVariableTargetNodeType: "LocalVariableTargetNode",
	LocalVariableWriteNodeType: "LocalVariableWriteNode",
	MatchPredicateNodeType: "MatchPredicateNode",
	MatchRequiredNodeType: "MatchRequiredNode",
	MatchWriteNodeType: "MatchWriteNode",
	MissingNodeType: "MissingNode",
	ModuleNodeType: "ModuleNode",
	MultiWriteNodeType: "MultiWriteNode",
	NextNodeType: "NextNode",
	NilNodeType: "NilNode",
	NoKeywordsParameterNodeType: "NoKeywordsParameterNode",
	NumberedReferenceReadNodeType: "NumberedReferenceReadNode",
	OperatorWriteNodeType: "OperatorWriteNode",
	OptionalParameterNodeType: "OptionalParameterNode",
	OrNodeType: "OrNode",
	OrWriteNodeType: "OrWriteNode",
	ParametersNodeType: "ParametersNode",
	ParenthesesNodeType: "ParenthesesNode",
	PinnedExpressionNodeType: "PinnedExpressionNode",
	PinnedVariableNodeType: "PinnedVariableNode",
	PostExecutionNodeType: "PostExecutionNode",
	PreExecutionNodeType: "PreExecutionNode",
	ProgramNodeType: "ProgramNode",
	RangeNodeType: "RangeNode",
	RationalNodeType: "RationalNode",
	RedoNodeType: "RedoNode",
	RegularExpressionNodeType: "RegularExpressionNode",
	RequiredDestructuredParameterNodeType: "RequiredDestructuredParameterNode",
	RequiredParameterNodeType: "RequiredParameterNode",
	RescueModifierNodeType: "RescueModifierNode",
	RescueNodeType: "RescueNode",
	RestParameterNodeType: "RestParameterNode",
	RetryNodeType: "RetryNode",
	ReturnNodeType: "ReturnNode",
	SelfNodeType: "SelfNode",
	SingletonClassNodeType: "SingletonClassNode",
	SourceEncodingNodeType: "SourceEncodingNode",
	SourceFileNodeType: "SourceFileNode",
	SourceLineNodeType: "SourceLineNode",
	SplatNodeType: "SplatNode",
	StatementsNodeType: "StatementsNode",
	StringConcatNodeType: "StringConcatNode",
	StringNodeType: "StringNode",
	SuperNodeType: "SuperNode",
	SymbolNodeType: "SymbolNode",
	TrueNodeType: "TrueNode",
	UndefNodeType: "UndefNode",
	UnlessNodeType: "UnlessNode",
	UntilNodeType: "UntilNode",
	WhenNodeType: "WhenNode",
	WhileNodeType: "WhileNode",
	XStringNodeType: "XStringNode",
	YieldNodeType: "YieldNode",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "Unknown"
}

// AliasNode represents the use of the `alias` keyword.
type AliasNode struct {
	NodeBase
	KeywordLoc Location
	NewName    Node
	OldName    Node
}

func (n *AliasNode) Type() NodeType { return AliasNodeType }

func (n *AliasNode) Children() []Node {
	var out []Node
	if n.NewName != nil {
		out = append(out, n.NewName)
	}
	if n.OldName != nil {
		out = append(out, n.OldName)
	}
	return out
}

// AlternationPatternNode represents an alternation pattern in pattern matching: `a | b`.
type AlternationPatternNode struct {
	NodeBase
	Left        Node
	OperatorLoc Location
	Right       Node
}

func (n *AlternationPatternNode) Type() NodeType { return AlternationPatternNodeType }

func (n *AlternationPatternNode) Children() []Node {
	var out []Node
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// AndNode represents `&&` and `and`.
type AndNode struct {
	NodeBase
	Left        Node
	OperatorLoc Location
	Right       Node
}

func (n *AndNode) Type() NodeType { return AndNodeType }

func (n *AndNode) Children() []Node {
	var out []Node
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// AndWriteNode represents `target &&= value`.
type AndWriteNode struct {
	NodeBase
	Target      Node
	OperatorLoc Location
	Value       Node
}

func (n *AndWriteNode) Type() NodeType { return AndWriteNodeType }

func (n *AndWriteNode) Children() []Node {
	var out []Node
	if n.Target != nil {
		out = append(out, n.Target)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// ArgumentsNode holds the arguments of a call, `yield`, `super`, `return`, `break` or `next`.
type ArgumentsNode struct {
	NodeBase
	Arguments []Node
}

func (n *ArgumentsNode) Type() NodeType { return ArgumentsNodeType }

func (n *ArgumentsNode) Children() []Node {
	var out []Node
	out = append(out, n.Arguments...)
	return out
}

// ArrayNode represents an array literal, `%w`/`%i` lists and implicit arrays on the right of a multiple assignment.
type ArrayNode struct {
	NodeBase
	OpeningLoc Location
	Elements   []Node
	ClosingLoc Location
}

func (n *ArrayNode) Type() NodeType { return ArrayNodeType }

func (n *ArrayNode) Children() []Node {
	var out []Node
	out = append(out, n.Elements...)
	return out
}

// ArrayPatternNode represents an array pattern: `[a, *b, c]` or `Const(a, b)`.
type ArrayPatternNode struct {
	NodeBase
	Constant   Node
	OpeningLoc Location
	Requireds  []Node
	Rest       Node
	Posts      []Node
	ClosingLoc Location
}

func (n *ArrayPatternNode) Type() NodeType { return ArrayPatternNodeType }

func (n *ArrayPatternNode) Children() []Node {
	var out []Node
	if n.Constant != nil {
		out = append(out, n.Constant)
	}
	out = append(out, n.Requireds...)
	if n.Rest != nil {
		out = append(out, n.Rest)
	}
	out = append(out, n.Posts...)
	return out
}

// AssocNode represents a key/value pair in a hash literal, keyword arguments or a hash pattern.
type AssocNode struct {
	NodeBase
	Key         Node
	OperatorLoc Location
	Value       Node
}

func (n *AssocNode) Type() NodeType { return AssocNodeType }

func (n *AssocNode) Children() []Node {
	var out []Node
	if n.Key != nil {
		out = append(out, n.Key)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// AssocSplatNode represents `**value` in a hash literal or keyword arguments.
type AssocSplatNode struct {
	NodeBase
	OperatorLoc Location
	Value       Node
}

func (n *AssocSplatNode) Type() NodeType { return AssocSplatNodeType }

func (n *AssocSplatNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// BackReferenceReadNode represents `$&`, `$``, `$'` and `$+`.
type BackReferenceReadNode struct {
	NodeBase
	Name string
}

func (n *BackReferenceReadNode) Type() NodeType { return BackReferenceReadNodeType }

func (n *BackReferenceReadNode) Children() []Node { return nil }

// BeginNode represents a `begin ... end` block and implicit bodies with rescue/else/ensure clauses.
type BeginNode struct {
	NodeBase
	BeginKeywordLoc Location
	Statements      *StatementsNode
	RescueClause    *RescueNode
	ElseClause      *ElseNode
	EnsureClause    *EnsureNode
	EndKeywordLoc   Location
}

func (n *BeginNode) Type() NodeType { return BeginNodeType }

func (n *BeginNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	if n.RescueClause != nil {
		out = append(out, n.RescueClause)
	}
	if n.ElseClause != nil {
		out = append(out, n.ElseClause)
	}
	if n.EnsureClause != nil {
		out = append(out, n.EnsureClause)
	}
	return out
}

// BlockArgumentNode represents `&expr` passed as the block of a call.
type BlockArgumentNode struct {
	NodeBase
	OperatorLoc Location
	Expression  Node
}

func (n *BlockArgumentNode) Type() NodeType { return BlockArgumentNodeType }

func (n *BlockArgumentNode) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = append(out, n.Expression)
	}
	return out
}

// BlockLocalVariableNode represents a block-local variable declared after `;` in block parameters.
type BlockLocalVariableNode struct {
	NodeBase
	Name string
}

func (n *BlockLocalVariableNode) Type() NodeType { return BlockLocalVariableNodeType }

func (n *BlockLocalVariableNode) Children() []Node { return nil }

// BlockNode represents a `{ ... }` or `do ... end` block attached to a call.
type BlockNode struct {
	NodeBase
	Locals     []string
	OpeningLoc Location
	Parameters *BlockParametersNode
	Body       Node
	ClosingLoc Location
}

func (n *BlockNode) Type() NodeType { return BlockNodeType }

func (n *BlockNode) Children() []Node {
	var out []Node
	if n.Parameters != nil {
		out = append(out, n.Parameters)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// BlockParameterNode represents `&name` in a parameter list.
type BlockParameterNode struct {
	NodeBase
	Name        string
	OperatorLoc Location
	NameLoc     Location
}

func (n *BlockParameterNode) Type() NodeType { return BlockParameterNodeType }

func (n *BlockParameterNode) Children() []Node { return nil }

// BlockParametersNode represents the `|...|` parameter list of a block or the parameters of a lambda.
type BlockParametersNode struct {
	NodeBase
	OpeningLoc Location
	Parameters *ParametersNode
	Locals     []Node
	ClosingLoc Location
}

func (n *BlockParametersNode) Type() NodeType { return BlockParametersNodeType }

func (n *BlockParametersNode) Children() []Node {
	var out []Node
	if n.Parameters != nil {
		out = append(out, n.Parameters)
	}
	out = append(out, n.Locals...)
	return out
}

// BreakNode represents the `break` keyword.
type BreakNode struct {
	NodeBase
	KeywordLoc Location
	Arguments  *ArgumentsNode
}

func (n *BreakNode) Type() NodeType { return BreakNodeType }

func (n *BreakNode) Children() []Node {
	var out []Node
	if n.Arguments != nil {
		out = append(out, n.Arguments)
	}
	return out
}

// CallNode represents a method call. Binary and unary operators are calls too.
type CallNode struct {
	NodeBase
	Receiver        Node
	CallOperatorLoc Location
	MessageLoc      Location
	OpeningLoc      Location
	Arguments       *ArgumentsNode
	ClosingLoc      Location
	Block           Node
	Name            string
}

func (n *CallNode) Type() NodeType { return CallNodeType }

func (n *CallNode) Children() []Node {
	var out []Node
	if n.Receiver != nil {
		out = append(out, n.Receiver)
	}
	if n.Arguments != nil {
		out = append(out, n.Arguments)
	}
	if n.Block != nil {
		out = append(out, n.Block)
	}
	return out
}

// CapturePatternNode represents `pattern => name` inside a pattern.
type CapturePatternNode struct {
	NodeBase
	Value       Node
	OperatorLoc Location
	Target      Node
}

func (n *CapturePatternNode) Type() NodeType { return CapturePatternNodeType }

func (n *CapturePatternNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	if n.Target != nil {
		out = append(out, n.Target)
	}
	return out
}

// CaseNode represents a `case` expression with `when` or `in` branches.
type CaseNode struct {
	NodeBase
	CaseKeywordLoc Location
	Predicate      Node
	Conditions     []Node
	Consequent     *ElseNode
	EndKeywordLoc  Location
}

func (n *CaseNode) Type() NodeType { return CaseNodeType }

func (n *CaseNode) Children() []Node {
	var out []Node
	if n.Predicate != nil {
		out = append(out, n.Predicate)
	}
	out = append(out, n.Conditions...)
	if n.Consequent != nil {
		out = append(out, n.Consequent)
	}
	return out
}

// ClassNode represents a class definition.
type ClassNode struct {
	NodeBase
	Locals                 []string
	ClassKeywordLoc        Location
	ConstantPath           Node
	InheritanceOperatorLoc Location
	Superclass             Node
	Body                   Node
	EndKeywordLoc          Location
	Name                   string
}

func (n *ClassNode) Type() NodeType { return ClassNodeType }

func (n *ClassNode) Children() []Node {
	var out []Node
	if n.ConstantPath != nil {
		out = append(out, n.ConstantPath)
	}
	if n.Superclass != nil {
		out = append(out, n.Superclass)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// ClassVariableReadNode represents reading `@@name`.
type ClassVariableReadNode struct {
	NodeBase
	Name string
}

func (n *ClassVariableReadNode) Type() NodeType { return ClassVariableReadNodeType }

func (n *ClassVariableReadNode) Children() []Node { return nil }

// ClassVariableTargetNode represents `@@name` as a target of a multiple assignment, `rescue => ` or `for`.
type ClassVariableTargetNode struct {
	NodeBase
	Name string
}

func (n *ClassVariableTargetNode) Type() NodeType { return ClassVariableTargetNodeType }

func (n *ClassVariableTargetNode) Children() []Node { return nil }

// ClassVariableWriteNode represents `@@name = value`.
type ClassVariableWriteNode struct {
	NodeBase
	Name        string
	NameLoc     Location
	OperatorLoc Location
	Value       Node
}

func (n *ClassVariableWriteNode) Type() NodeType { return ClassVariableWriteNodeType }

func (n *ClassVariableWriteNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// ConstantPathNode represents `Parent::Child` and `::Child`.
type ConstantPathNode struct {
	NodeBase
	Parent       Node
	DelimiterLoc Location
	Child        Node
}

func (n *ConstantPathNode) Type() NodeType { return ConstantPathNodeType }

func (n *ConstantPathNode) Children() []Node {
	var out []Node
	if n.Parent != nil {
		out = append(out, n.Parent)
	}
	if n.Child != nil {
		out = append(out, n.Child)
	}
	return out
}

// ConstantPathTargetNode represents `Parent::Child` as a target of a multiple assignment.
type ConstantPathTargetNode struct {
	NodeBase
	Parent       Node
	DelimiterLoc Location
	Child        Node
}

func (n *ConstantPathTargetNode) Type() NodeType { return ConstantPathTargetNodeType }

func (n *ConstantPathTargetNode) Children() []Node {
	var out []Node
	if n.Parent != nil {
		out = append(out, n.Parent)
	}
	if n.Child != nil {
		out = append(out, n.Child)
	}
	return out
}

// ConstantPathWriteNode represents `Parent::Child = value`.
type ConstantPathWriteNode struct {
	NodeBase
	Target      *ConstantPathNode
	OperatorLoc Location
	Value       Node
}

func (n *ConstantPathWriteNode) Type() NodeType { return ConstantPathWriteNodeType }

func (n *ConstantPathWriteNode) Children() []Node {
	var out []Node
	if n.Target != nil {
		out = append(out, n.Target)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// ConstantReadNode represents a constant reference.
type ConstantReadNode struct {
	NodeBase
	Name string
}

func (n *ConstantReadNode) Type() NodeType { return ConstantReadNodeType }

func (n *ConstantReadNode) Children() []Node { return nil }

// ConstantTargetNode represents a constant as a target of a multiple assignment.
type ConstantTargetNode struct {
	NodeBase
	Name string
}

func (n *ConstantTargetNode) Type() NodeType { return ConstantTargetNodeType }

func (n *ConstantTargetNode) Children() []Node { return nil }

// ConstantWriteNode represents `Name = value`.
type ConstantWriteNode struct {
	NodeBase
	Name        string
	NameLoc     Location
	OperatorLoc Location
	Value       Node
}

func (n *ConstantWriteNode) Type() NodeType { return ConstantWriteNodeType }

func (n *ConstantWriteNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// DefNode represents a method definition.
type DefNode struct {
	NodeBase
	Name          string
	NameLoc       Location
	DefKeywordLoc Location
	Receiver      Node
	OperatorLoc   Location
	LparenLoc     Location
	Parameters    *ParametersNode
	RparenLoc     Location
	EqualLoc      Location
	Body          Node
	EndKeywordLoc Location
	Locals        []string
}

func (n *DefNode) Type() NodeType { return DefNodeType }

func (n *DefNode) Children() []Node {
	var out []Node
	if n.Receiver != nil {
		out = append(out, n.Receiver)
	}
	if n.Parameters != nil {
		out = append(out, n.Parameters)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// DefinedNode represents `defined?(expr)`.
type DefinedNode struct {
	NodeBase
	KeywordLoc Location
	LparenLoc  Location
	Value      Node
	RparenLoc  Location
}

func (n *DefinedNode) Type() NodeType { return DefinedNodeType }

func (n *DefinedNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// ElseNode represents an `else` clause (also the false branch of a ternary).
type ElseNode struct {
	NodeBase
	ElseKeywordLoc Location
	Statements     *StatementsNode
	EndKeywordLoc  Location
}

func (n *ElseNode) Type() NodeType { return ElseNodeType }

func (n *ElseNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// EmbeddedStatementsNode represents `#{...}` interpolation.
type EmbeddedStatementsNode struct {
	NodeBase
	OpeningLoc Location
	Statements *StatementsNode
	ClosingLoc Location
}

func (n *EmbeddedStatementsNode) Type() NodeType { return EmbeddedStatementsNodeType }

func (n *EmbeddedStatementsNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// EmbeddedVariableNode represents `#@ivar`, `#@@cvar` and `#$gvar` interpolation.
type EmbeddedVariableNode struct {
	NodeBase
	OperatorLoc Location
	Variable    Node
}

func (n *EmbeddedVariableNode) Type() NodeType { return EmbeddedVariableNodeType }

func (n *EmbeddedVariableNode) Children() []Node {
	var out []Node
	if n.Variable != nil {
		out = append(out, n.Variable)
	}
	return out
}

// EnsureNode represents an `ensure` clause.
type EnsureNode struct {
	NodeBase
	EnsureKeywordLoc Location
	Statements       *StatementsNode
	EndKeywordLoc    Location
}

func (n *EnsureNode) Type() NodeType { return EnsureNodeType }

func (n *EnsureNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// FalseNode represents `false`.
type FalseNode struct {
	NodeBase
}

func (n *FalseNode) Type() NodeType { return FalseNodeType }

func (n *FalseNode) Children() []Node { return nil }

// FindPatternNode represents a find pattern: `[*, x, *]`.
type FindPatternNode struct {
	NodeBase
	Constant   Node
	OpeningLoc Location
	Left       Node
	Requireds  []Node
	Right      Node
	ClosingLoc Location
}

func (n *FindPatternNode) Type() NodeType { return FindPatternNodeType }

func (n *FindPatternNode) Children() []Node {
	var out []Node
	if n.Constant != nil {
		out = append(out, n.Constant)
	}
	if n.Left != nil {
		out = append(out, n.Left)
	}
	out = append(out, n.Requireds...)
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// FloatNode represents a floating point literal.
type FloatNode struct {
	NodeBase
	Value float64
}

func (n *FloatNode) Type() NodeType { return FloatNodeType }

func (n *FloatNode) Children() []Node { return nil }

// ForNode represents a `for` loop.
type ForNode struct {
	NodeBase
	ForKeywordLoc Location
	Index         Node
	InKeywordLoc  Location
	Collection    Node
	DoKeywordLoc  Location
	Statements    *StatementsNode
	EndKeywordLoc Location
}

func (n *ForNode) Type() NodeType { return ForNodeType }

func (n *ForNode) Children() []Node {
	var out []Node
	if n.Index != nil {
		out = append(out, n.Index)
	}
	if n.Collection != nil {
		out = append(out, n.Collection)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// ForwardingArgumentsNode represents `...` in call arguments.
type ForwardingArgumentsNode struct {
	NodeBase
}

func (n *ForwardingArgumentsNode) Type() NodeType { return ForwardingArgumentsNodeType }

func (n *ForwardingArgumentsNode) Children() []Node { return nil }

// ForwardingParameterNode represents `...` in a parameter list.
type ForwardingParameterNode struct {
	NodeBase
}

func (n *ForwardingParameterNode) Type() NodeType { return ForwardingParameterNodeType }

func (n *ForwardingParameterNode) Children() []Node { return nil }

// ForwardingSuperNode represents `super` without arguments or parentheses.
type ForwardingSuperNode struct {
	NodeBase
	Block *BlockNode
}

func (n *ForwardingSuperNode) Type() NodeType { return ForwardingSuperNodeType }

func (n *ForwardingSuperNode) Children() []Node {
	var out []Node
	if n.Block != nil {
		out = append(out, n.Block)
	}
	return out
}

// GlobalVariableReadNode represents reading `$name`.
type GlobalVariableReadNode struct {
	NodeBase
	Name string
}

func (n *GlobalVariableReadNode) Type() NodeType { return GlobalVariableReadNodeType }

func (n *GlobalVariableReadNode) Children() []Node { return nil }

// GlobalVariableTargetNode represents `$name` as an assignment target.
type GlobalVariableTargetNode struct {
	NodeBase
	Name string
}

func (n *GlobalVariableTargetNode) Type() NodeType { return GlobalVariableTargetNodeType }

func (n *GlobalVariableTargetNode) Children() []Node { return nil }

// GlobalVariableWriteNode represents `$name = value`.
type GlobalVariableWriteNode struct {
	NodeBase
	Name        string
	NameLoc     Location
	OperatorLoc Location
	Value       Node
}

func (n *GlobalVariableWriteNode) Type() NodeType { return GlobalVariableWriteNodeType }

func (n *GlobalVariableWriteNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// HashNode represents a hash literal.
type HashNode struct {
	NodeBase
	OpeningLoc Location
	Elements   []Node
	ClosingLoc Location
}

func (n *HashNode) Type() NodeType { return HashNodeType }

func (n *HashNode) Children() []Node {
	var out []Node
	out = append(out, n.Elements...)
	return out
}

// HashPatternNode represents a hash pattern: `{a:, **rest}` or `Const(a:)`.
type HashPatternNode struct {
	NodeBase
	Constant   Node
	OpeningLoc Location
	Elements   []Node
	Rest       Node
	ClosingLoc Location
}

func (n *HashPatternNode) Type() NodeType { return HashPatternNodeType }

func (n *HashPatternNode) Children() []Node {
	var out []Node
	if n.Constant != nil {
		out = append(out, n.Constant)
	}
	out = append(out, n.Elements...)
	if n.Rest != nil {
		out = append(out, n.Rest)
	}
	return out
}

// IfNode represents `if`, `elsif`, the `if` modifier and the ternary operator.
type IfNode struct {
	NodeBase
	IfKeywordLoc  Location
	Predicate     Node
	Statements    *StatementsNode
	Consequent    Node
	EndKeywordLoc Location
}

func (n *IfNode) Type() NodeType { return IfNodeType }

func (n *IfNode) Children() []Node {
	var out []Node
	if n.Predicate != nil {
		out = append(out, n.Predicate)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	if n.Consequent != nil {
		out = append(out, n.Consequent)
	}
	return out
}

// ImaginaryNode represents an imaginary literal such as `1i`.
type ImaginaryNode struct {
	NodeBase
	Numeric Node
}

func (n *ImaginaryNode) Type() NodeType { return ImaginaryNodeType }

func (n *ImaginaryNode) Children() []Node {
	var out []Node
	if n.Numeric != nil {
		out = append(out, n.Numeric)
	}
	return out
}

// InNode represents an `in` branch of a pattern matching `case`.
type InNode struct {
	NodeBase
	InLoc      Location
	Pattern    Node
	ThenLoc    Location
	Statements *StatementsNode
}

func (n *InNode) Type() NodeType { return InNodeType }

func (n *InNode) Children() []Node {
	var out []Node
	if n.Pattern != nil {
		out = append(out, n.Pattern)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// InstanceVariableReadNode represents reading `@name`.
type InstanceVariableReadNode struct {
	NodeBase
	Name string
}

func (n *InstanceVariableReadNode) Type() NodeType { return InstanceVariableReadNodeType }

func (n *InstanceVariableReadNode) Children() []Node { return nil }

// InstanceVariableTargetNode represents `@name` as an assignment target.
type InstanceVariableTargetNode struct {
	NodeBase
	Name string
}

func (n *InstanceVariableTargetNode) Type() NodeType { return InstanceVariableTargetNodeType }

func (n *InstanceVariableTargetNode) Children() []Node { return nil }

// InstanceVariableWriteNode represents `@name = value`.
type InstanceVariableWriteNode struct {
	NodeBase
	Name        string
	NameLoc     Location
	OperatorLoc Location
	Value       Node
}

func (n *InstanceVariableWriteNode) Type() NodeType { return InstanceVariableWriteNodeType }

func (n *InstanceVariableWriteNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// IntegerNode represents an integer literal.
type IntegerNode struct {
	NodeBase
	Value *big.Int
}

func (n *IntegerNode) Type() NodeType { return IntegerNodeType }

func (n *IntegerNode) Children() []Node { return nil }

// InterpolatedRegularExpressionNode represents a regular expression literal with interpolation.
type InterpolatedRegularExpressionNode struct {
	NodeBase
	OpeningLoc Location
	Parts      []Node
	ClosingLoc Location
}

func (n *InterpolatedRegularExpressionNode) Type() NodeType { return InterpolatedRegularExpressionNodeType }

func (n *InterpolatedRegularExpressionNode) Children() []Node {
	var out []Node
	out = append(out, n.Parts...)
	return out
}

// InterpolatedStringNode represents a string literal with interpolation, or a heredoc split into parts.
type InterpolatedStringNode struct {
	NodeBase
	OpeningLoc Location
	Parts      []Node
	ClosingLoc Location
}

func (n *InterpolatedStringNode) Type() NodeType { return InterpolatedStringNodeType }

func (n *InterpolatedStringNode) Children() []Node {
	var out []Node
	out = append(out, n.Parts...)
	return out
}

// InterpolatedSymbolNode represents a symbol literal with interpolation.
type InterpolatedSymbolNode struct {
	NodeBase
	OpeningLoc Location
	Parts      []Node
	ClosingLoc Location
}

func (n *InterpolatedSymbolNode) Type() NodeType { return InterpolatedSymbolNodeType }

func (n *InterpolatedSymbolNode) Children() []Node {
	var out []Node
	out = append(out, n.Parts...)
	return out
}

// InterpolatedXStringNode represents a backtick or `%x` literal with interpolation.
type InterpolatedXStringNode struct {
	NodeBase
	OpeningLoc Location
	Parts      []Node
	ClosingLoc Location
}

func (n *InterpolatedXStringNode) Type() NodeType { return InterpolatedXStringNodeType }

func (n *InterpolatedXStringNode) Children() []Node {
	var out []Node
	out = append(out, n.Parts...)
	return out
}

// KeywordHashNode represents keyword arguments passed without braces.
type KeywordHashNode struct {
	NodeBase
	Elements []Node
}

func (n *KeywordHashNode) Type() NodeType { return KeywordHashNodeType }

func (n *KeywordHashNode) Children() []Node {
	var out []Node
	out = append(out, n.Elements...)
	return out
}

// KeywordParameterNode represents `name:` and `name: default` in a parameter list.
type KeywordParameterNode struct {
	NodeBase
	Name    string
	NameLoc Location
	Value   Node
}

func (n *KeywordParameterNode) Type() NodeType { return KeywordParameterNodeType }

func (n *KeywordParameterNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// KeywordRestParameterNode represents `**name` in a parameter list.
type KeywordRestParameterNode struct {
	NodeBase
	OperatorLoc Location
	Name        string
	NameLoc     Location
}

func (n *KeywordRestParameterNode) Type() NodeType { return KeywordRestParameterNodeType }

func (n *KeywordRestParameterNode) Children() []Node { return nil }

// LambdaNode represents a `->` lambda literal.
type LambdaNode struct {
	NodeBase
	Locals      []string
	OperatorLoc Location
	OpeningLoc  Location
	Parameters  *BlockParametersNode
	Body        Node
	ClosingLoc  Location
}

func (n *LambdaNode) Type() NodeType { return LambdaNodeType }

func (n *LambdaNode) Children() []Node {
	var out []Node
	if n.Parameters != nil {
		out = append(out, n.Parameters)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// LocalVariableReadNode represents reading a local variable. Depth counts the scopes crossed to find it.
type LocalVariableReadNode struct {
	NodeBase
	Name  string
	Depth int
}

func (n *LocalVariableReadNode) Type() NodeType { return LocalVariableReadNodeType }

func (n *LocalVariableReadNode) Children() []Node { return nil }

// LocalVariableTargetNode represents a local variable as an assignment or pattern target.
type LocalVariableTargetNode struct {
	NodeBase
	Name  string
	Depth int
}

func (n *LocalVariableTargetNode) Type() NodeType { return LocalVariableTargetNodeType }

func (n *LocalVariableTargetNode) Children() []Node { return nil }

// LocalVariableWriteNode represents `name = value` for a local variable.
type LocalVariableWriteNode struct {
	NodeBase
	Name        string
	Depth       int
	NameLoc     Location
	OperatorLoc Location
	Value       Node
}

func (n *LocalVariableWriteNode) Type() NodeType { return LocalVariableWriteNodeType }

func (n *LocalVariableWriteNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// MatchPredicateNode represents `value in pattern`.
type MatchPredicateNode struct {
	NodeBase
	Value       Node
	OperatorLoc Location
	Pattern     Node
}

func (n *MatchPredicateNode) Type() NodeType { return MatchPredicateNodeType }

func (n *MatchPredicateNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	if n.Pattern != nil {
		out = append(out, n.Pattern)
	}
	return out
}

// MatchRequiredNode represents `value => pattern`.
type MatchRequiredNode struct {
	NodeBase
	Value       Node
	OperatorLoc Location
	Pattern     Node
}

func (n *MatchRequiredNode) Type() NodeType { return MatchRequiredNodeType }

func (n *MatchRequiredNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	if n.Pattern != nil {
		out = append(out, n.Pattern)
	}
	return out
}

// MatchWriteNode represents a `/(?<name>...)/ =~ value` call that declares local variables.
type MatchWriteNode struct {
	NodeBase
	Call    *CallNode
	Targets []Node
}

func (n *MatchWriteNode) Type() NodeType { return MatchWriteNodeType }

func (n *MatchWriteNode) Children() []Node {
	var out []Node
	if n.Call != nil {
		out = append(out, n.Call)
	}
	out = append(out, n.Targets...)
	return out
}

// MissingNode is a zero-width placeholder for syntax the parser could not parse.
type MissingNode struct {
	NodeBase
}

func (n *MissingNode) Type() NodeType { return MissingNodeType }

func (n *MissingNode) Children() []Node { return nil }

// ModuleNode represents a module definition.
type ModuleNode struct {
	NodeBase
	Locals           []string
	ModuleKeywordLoc Location
	ConstantPath     Node
	Body             Node
	EndKeywordLoc    Location
	Name             string
}

func (n *ModuleNode) Type() NodeType { return ModuleNodeType }

func (n *ModuleNode) Children() []Node {
	var out []Node
	if n.ConstantPath != nil {
		out = append(out, n.ConstantPath)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// MultiWriteNode represents a destructuring assignment `a, b = 1, 2`, and a parenthesised target group without a value.
type MultiWriteNode struct {
	NodeBase
	LparenLoc   Location
	Targets     []Node
	RparenLoc   Location
	OperatorLoc Location
	Value       Node
}

func (n *MultiWriteNode) Type() NodeType { return MultiWriteNodeType }

func (n *MultiWriteNode) Children() []Node {
	var out []Node
	out = append(out, n.Targets...)
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// NextNode represents the `next` keyword.
type NextNode struct {
	NodeBase
	KeywordLoc Location
	Arguments  *ArgumentsNode
}

func (n *NextNode) Type() NodeType { return NextNodeType }

func (n *NextNode) Children() []Node {
	var out []Node
	if n.Arguments != nil {
		out = append(out, n.Arguments)
	}
	return out
}

// NilNode represents `nil`.
type NilNode struct {
	NodeBase
}

func (n *NilNode) Type() NodeType { return NilNodeType }

func (n *NilNode) Children() []Node { return nil }

// NoKeywordsParameterNode represents `**nil` in a parameter list.
type NoKeywordsParameterNode struct {
	NodeBase
	OperatorLoc Location
	KeywordLoc  Location
}

func (n *NoKeywordsParameterNode) Type() NodeType { return NoKeywordsParameterNodeType }

func (n *NoKeywordsParameterNode) Children() []Node { return nil }

// NumberedReferenceReadNode represents `$1` through `$9...`.
type NumberedReferenceReadNode struct {
	NodeBase
	Number int
}

func (n *NumberedReferenceReadNode) Type() NodeType { return NumberedReferenceReadNodeType }

func (n *NumberedReferenceReadNode) Children() []Node { return nil }

// OperatorWriteNode represents compound assignment such as `target += value`.
type OperatorWriteNode struct {
	NodeBase
	Target      Node
	OperatorLoc Location
	Operator    string
	Value       Node
}

func (n *OperatorWriteNode) Type() NodeType { return OperatorWriteNodeType }

func (n *OperatorWriteNode) Children() []Node {
	var out []Node
	if n.Target != nil {
		out = append(out, n.Target)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// OptionalParameterNode represents `name = default` in a parameter list.
type OptionalParameterNode struct {
	NodeBase
	Name        string
	NameLoc     Location
	OperatorLoc Location
	Value       Node
}

func (n *OptionalParameterNode) Type() NodeType { return OptionalParameterNodeType }

func (n *OptionalParameterNode) Children() []Node {
	var out []Node
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// OrNode represents `||` and `or`.
type OrNode struct {
	NodeBase
	Left        Node
	OperatorLoc Location
	Right       Node
}

func (n *OrNode) Type() NodeType { return OrNodeType }

func (n *OrNode) Children() []Node {
	var out []Node
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// OrWriteNode represents `target ||= value`.
type OrWriteNode struct {
	NodeBase
	Target      Node
	OperatorLoc Location
	Value       Node
}

func (n *OrWriteNode) Type() NodeType { return OrWriteNodeType }

func (n *OrWriteNode) Children() []Node {
	var out []Node
	if n.Target != nil {
		out = append(out, n.Target)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// ParametersNode represents the parameter list of a method, block or lambda.
type ParametersNode struct {
	NodeBase
	Requireds   []Node
	Optionals   []Node
	Rest        Node
	Posts       []Node
	Keywords    []Node
	KeywordRest Node
	Block       *BlockParameterNode
}

func (n *ParametersNode) Type() NodeType { return ParametersNodeType }

func (n *ParametersNode) Children() []Node {
	var out []Node
	out = append(out, n.Requireds...)
	out = append(out, n.Optionals...)
	if n.Rest != nil {
		out = append(out, n.Rest)
	}
	out = append(out, n.Posts...)
	out = append(out, n.Keywords...)
	if n.KeywordRest != nil {
		out = append(out, n.KeywordRest)
	}
	if n.Block != nil {
		out = append(out, n.Block)
	}
	return out
}

// ParenthesesNode represents a parenthesised expression.
type ParenthesesNode struct {
	NodeBase
	OpeningLoc Location
	Body       Node
	ClosingLoc Location
}

func (n *ParenthesesNode) Type() NodeType { return ParenthesesNodeType }

func (n *ParenthesesNode) Children() []Node {
	var out []Node
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// PinnedExpressionNode represents `^(expr)` in a pattern.
type PinnedExpressionNode struct {
	NodeBase
	OperatorLoc Location
	LparenLoc   Location
	Expression  Node
	RparenLoc   Location
}

func (n *PinnedExpressionNode) Type() NodeType { return PinnedExpressionNodeType }

func (n *PinnedExpressionNode) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = append(out, n.Expression)
	}
	return out
}

// PinnedVariableNode represents `^name` in a pattern.
type PinnedVariableNode struct {
	NodeBase
	OperatorLoc Location
	Variable    Node
}

func (n *PinnedVariableNode) Type() NodeType { return PinnedVariableNodeType }

func (n *PinnedVariableNode) Children() []Node {
	var out []Node
	if n.Variable != nil {
		out = append(out, n.Variable)
	}
	return out
}

// PostExecutionNode represents `END { ... }`.
type PostExecutionNode struct {
	NodeBase
	KeywordLoc Location
	OpeningLoc Location
	Statements *StatementsNode
	ClosingLoc Location
}

func (n *PostExecutionNode) Type() NodeType { return PostExecutionNodeType }

func (n *PostExecutionNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// PreExecutionNode represents `BEGIN { ... }`.
type PreExecutionNode struct {
	NodeBase
	KeywordLoc Location
	OpeningLoc Location
	Statements *StatementsNode
	ClosingLoc Location
}

func (n *PreExecutionNode) Type() NodeType { return PreExecutionNodeType }

func (n *PreExecutionNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// ProgramNode is the root of every tree.
type ProgramNode struct {
	NodeBase
	Locals     []string
	Statements *StatementsNode
}

func (n *ProgramNode) Type() NodeType { return ProgramNodeType }

func (n *ProgramNode) Children() []Node {
	var out []Node
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// RangeNode represents `a..b` and `a...b`; either side may be absent.
type RangeNode struct {
	NodeBase
	Left        Node
	OperatorLoc Location
	Right       Node
}

func (n *RangeNode) Type() NodeType { return RangeNodeType }

func (n *RangeNode) Children() []Node {
	var out []Node
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// RationalNode represents a rational literal such as `1r`.
type RationalNode struct {
	NodeBase
	Numeric Node
}

func (n *RationalNode) Type() NodeType { return RationalNodeType }

func (n *RationalNode) Children() []Node {
	var out []Node
	if n.Numeric != nil {
		out = append(out, n.Numeric)
	}
	return out
}

// RedoNode represents the `redo` keyword.
type RedoNode struct {
	NodeBase
}

func (n *RedoNode) Type() NodeType { return RedoNodeType }

func (n *RedoNode) Children() []Node { return nil }

// RegularExpressionNode represents a regular expression literal without interpolation.
type RegularExpressionNode struct {
	NodeBase
	OpeningLoc Location
	ContentLoc Location
	ClosingLoc Location
	Unescaped  []byte
}

func (n *RegularExpressionNode) Type() NodeType { return RegularExpressionNodeType }

func (n *RegularExpressionNode) Children() []Node { return nil }

// RequiredDestructuredParameterNode represents `(a, b)` in a parameter list.
type RequiredDestructuredParameterNode struct {
	NodeBase
	OpeningLoc Location
	Parameters []Node
	ClosingLoc Location
}

func (n *RequiredDestructuredParameterNode) Type() NodeType { return RequiredDestructuredParameterNodeType }

func (n *RequiredDestructuredParameterNode) Children() []Node {
	var out []Node
	out = append(out, n.Parameters...)
	return out
}

// RequiredParameterNode represents a required positional parameter.
type RequiredParameterNode struct {
	NodeBase
	Name string
}

func (n *RequiredParameterNode) Type() NodeType { return RequiredParameterNodeType }

func (n *RequiredParameterNode) Children() []Node { return nil }

// RescueModifierNode represents `expr rescue fallback`.
type RescueModifierNode struct {
	NodeBase
	Expression       Node
	KeywordLoc       Location
	RescueExpression Node
}

func (n *RescueModifierNode) Type() NodeType { return RescueModifierNodeType }

func (n *RescueModifierNode) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = append(out, n.Expression)
	}
	if n.RescueExpression != nil {
		out = append(out, n.RescueExpression)
	}
	return out
}

// RescueNode represents a `rescue` clause.
type RescueNode struct {
	NodeBase
	KeywordLoc  Location
	Exceptions  []Node
	OperatorLoc Location
	Reference   Node
	Statements  *StatementsNode
	Consequent  *RescueNode
}

func (n *RescueNode) Type() NodeType { return RescueNodeType }

func (n *RescueNode) Children() []Node {
	var out []Node
	out = append(out, n.Exceptions...)
	if n.Reference != nil {
		out = append(out, n.Reference)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	if n.Consequent != nil {
		out = append(out, n.Consequent)
	}
	return out
}

// RestParameterNode represents `*name` in a parameter list.
type RestParameterNode struct {
	NodeBase
	OperatorLoc Location
	Name        string
	NameLoc     Location
}

func (n *RestParameterNode) Type() NodeType { return RestParameterNodeType }

func (n *RestParameterNode) Children() []Node { return nil }

// RetryNode represents the `retry` keyword.
type RetryNode struct {
	NodeBase
}

func (n *RetryNode) Type() NodeType { return RetryNodeType }

func (n *RetryNode) Children() []Node { return nil }

// ReturnNode represents the `return` keyword.
type ReturnNode struct {
	NodeBase
	KeywordLoc Location
	Arguments  *ArgumentsNode
}

func (n *ReturnNode) Type() NodeType { return ReturnNodeType }

func (n *ReturnNode) Children() []Node {
	var out []Node
	if n.Arguments != nil {
		out = append(out, n.Arguments)
	}
	return out
}

// SelfNode represents `self`.
type SelfNode struct {
	NodeBase
}

func (n *SelfNode) Type() NodeType { return SelfNodeType }

func (n *SelfNode) Children() []Node { return nil }

// SingletonClassNode represents `class << expr`.
type SingletonClassNode struct {
	NodeBase
	Locals          []string
	ClassKeywordLoc Location
	OperatorLoc     Location
	Expression      Node
	Body            Node
	EndKeywordLoc   Location
}

func (n *SingletonClassNode) Type() NodeType { return SingletonClassNodeType }

func (n *SingletonClassNode) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = append(out, n.Expression)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// SourceEncodingNode represents `__ENCODING__`.
type SourceEncodingNode struct {
	NodeBase
}

func (n *SourceEncodingNode) Type() NodeType { return SourceEncodingNodeType }

func (n *SourceEncodingNode) Children() []Node { return nil }

// SourceFileNode represents `__FILE__`.
type SourceFileNode struct {
	NodeBase
	Filepath string
}

func (n *SourceFileNode) Type() NodeType { return SourceFileNodeType }

func (n *SourceFileNode) Children() []Node { return nil }

// SourceLineNode represents `__LINE__`.
type SourceLineNode struct {
	NodeBase
}

func (n *SourceLineNode) Type() NodeType { return SourceLineNodeType }

func (n *SourceLineNode) Children() []Node { return nil }

// SplatNode represents `*expr`; Expression is nil for an anonymous splat.
type SplatNode struct {
	NodeBase
	OperatorLoc Location
	Expression  Node
}

func (n *SplatNode) Type() NodeType { return SplatNodeType }

func (n *SplatNode) Children() []Node {
	var out []Node
	if n.Expression != nil {
		out = append(out, n.Expression)
	}
	return out
}

// StatementsNode is a sequence of expressions.
type StatementsNode struct {
	NodeBase
	Body []Node
}

func (n *StatementsNode) Type() NodeType { return StatementsNodeType }

func (n *StatementsNode) Children() []Node {
	var out []Node
	out = append(out, n.Body...)
	return out
}

// StringConcatNode represents adjacent string literals such as `"a" "b"`.
type StringConcatNode struct {
	NodeBase
	Left  Node
	Right Node
}

func (n *StringConcatNode) Type() NodeType { return StringConcatNodeType }

func (n *StringConcatNode) Children() []Node {
	var out []Node
	if n.Left != nil {
		out = append(out, n.Left)
	}
	if n.Right != nil {
		out = append(out, n.Right)
	}
	return out
}

// StringNode represents a string literal without interpolation, and literal parts of interpolated nodes.
type StringNode struct {
	NodeBase
	OpeningLoc Location
	ContentLoc Location
	ClosingLoc Location
	Unescaped  []byte
}

func (n *StringNode) Type() NodeType { return StringNodeType }

func (n *StringNode) Children() []Node { return nil }

// SuperNode represents `super` with arguments or parentheses.
type SuperNode struct {
	NodeBase
	KeywordLoc Location
	LparenLoc  Location
	Arguments  *ArgumentsNode
	RparenLoc  Location
	Block      Node
}

func (n *SuperNode) Type() NodeType { return SuperNodeType }

func (n *SuperNode) Children() []Node {
	var out []Node
	if n.Arguments != nil {
		out = append(out, n.Arguments)
	}
	if n.Block != nil {
		out = append(out, n.Block)
	}
	return out
}

// SymbolNode represents a symbol literal without interpolation.
type SymbolNode struct {
	NodeBase
	OpeningLoc Location
	ValueLoc   Location
	ClosingLoc Location
	Unescaped  []byte
}

func (n *SymbolNode) Type() NodeType { return SymbolNodeType }

func (n *SymbolNode) Children() []Node { return nil }

// TrueNode represents `true`.
type TrueNode struct {
	NodeBase
}

func (n *TrueNode) Type() NodeType { return TrueNodeType }

func (n *TrueNode) Children() []Node { return nil }

// UndefNode represents the `undef` keyword.
type UndefNode struct {
	NodeBase
	KeywordLoc Location
	Names      []Node
}

func (n *UndefNode) Type() NodeType { return UndefNodeType }

func (n *UndefNode) Children() []Node {
	var out []Node
	out = append(out, n.Names...)
	return out
}

// UnlessNode represents `unless` and the `unless` modifier.
type UnlessNode struct {
	NodeBase
	KeywordLoc    Location
	Predicate     Node
	Statements    *StatementsNode
	Consequent    *ElseNode
	EndKeywordLoc Location
}

func (n *UnlessNode) Type() NodeType { return UnlessNodeType }

func (n *UnlessNode) Children() []Node {
	var out []Node
	if n.Predicate != nil {
		out = append(out, n.Predicate)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	if n.Consequent != nil {
		out = append(out, n.Consequent)
	}
	return out
}

// UntilNode represents `until` and the `until` modifier.
type UntilNode struct {
	NodeBase
	KeywordLoc Location
	Predicate  Node
	Statements *StatementsNode
	ClosingLoc Location
}

func (n *UntilNode) Type() NodeType { return UntilNodeType }

func (n *UntilNode) Children() []Node {
	var out []Node
	if n.Predicate != nil {
		out = append(out, n.Predicate)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// WhenNode represents a `when` branch of a `case`.
type WhenNode struct {
	NodeBase
	KeywordLoc Location
	Conditions []Node
	Statements *StatementsNode
}

func (n *WhenNode) Type() NodeType { return WhenNodeType }

func (n *WhenNode) Children() []Node {
	var out []Node
	out = append(out, n.Conditions...)
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// WhileNode represents `while` and the `while` modifier.
type WhileNode struct {
	NodeBase
	KeywordLoc Location
	Predicate  Node
	Statements *StatementsNode
	ClosingLoc Location
}

func (n *WhileNode) Type() NodeType { return WhileNodeType }

func (n *WhileNode) Children() []Node {
	var out []Node
	if n.Predicate != nil {
		out = append(out, n.Predicate)
	}
	if n.Statements != nil {
		out = append(out, n.Statements)
	}
	return out
}

// XStringNode represents a backtick or `%x` literal without interpolation.
type XStringNode struct {
	NodeBase
	OpeningLoc Location
	ContentLoc Location
	ClosingLoc Location
	Unescaped  []byte
}

func (n *XStringNode) Type() NodeType { return XStringNodeType }

func (n *XStringNode) Children() []Node { return nil }

// YieldNode represents the `yield` keyword.
type YieldNode struct {
	NodeBase
	KeywordLoc Location
	LparenLoc  Location
	Arguments  *ArgumentsNode
	RparenLoc  Location
}

func (n *YieldNode) Type() NodeType { return YieldNodeType }

func (n *YieldNode) Children() []Node {
	var out []Node
	if n.Arguments != nil {
		out = append(out, n.Arguments)
	}
	return out
}

// NewNode returns a zero node of type t, or nil for an unknown type.
func NewNode(t NodeType) Node {
	switch t {
	case AliasNodeType:
		return &AliasNode{}
	case AlternationPatternNodeType:
		return &AlternationPatternNode{}
	case AndNodeType:
		return &AndNode{}
	case AndWriteNodeType:
		return &AndWriteNode{}
	case ArgumentsNodeType:
		return &ArgumentsNode{}
	case ArrayNodeType:
		return &ArrayNode{}
	case ArrayPatternNodeType:
		return &ArrayPatternNode{}
	case AssocNodeType:
		return &AssocNode{}
	case AssocSplatNodeType:
		return &AssocSplatNode{}
	case BackReferenceReadNodeType:
		return &BackReferenceReadNode{}
	case BeginNodeType:
		return &BeginNode{}
	case BlockArgumentNodeType:
		return &BlockArgumentNode{}
	case BlockLocalVariableNodeType:
		return &BlockLocalVariableNode{}
	case BlockNodeType:
		return &BlockNode{}
	case BlockParameterNodeType:
		return &BlockParameterNode{}
	case BlockParametersNodeType:
		return &BlockParametersNode{}
	case BreakNodeType:
		return &BreakNode{}
	case CallNodeType:
		return &CallNode{}
	case CapturePatternNodeType:
		return &CapturePatternNode{}
	case CaseNodeType:
		return &CaseNode{}
	case ClassNodeType:
		return &ClassNode{}
	case ClassVariableReadNodeType:
		return &ClassVariableReadNode{}
	case ClassVariableTargetNodeType:
		return &ClassVariableTargetNode{}
	case ClassVariableWriteNodeType:
		return &ClassVariableWriteNode{}
	case ConstantPathNodeType:
		return &ConstantPathNode{}
	case ConstantPathTargetNodeType:
		return &ConstantPathTargetNode{}
	case ConstantPathWriteNodeType:
		return &ConstantPathWriteNode{}
	case ConstantReadNodeType:
		return &ConstantReadNode{}
	case ConstantTargetNodeType:
		return &ConstantTargetNode{}
	case ConstantWriteNodeType:
		return &ConstantWriteNode{}
	case DefNodeType:
		return &DefNode{}
	case DefinedNodeType:
		return &DefinedNode{}
	case ElseNodeType:
		return &ElseNode{}
	case EmbeddedStatementsNodeType:
		return &EmbeddedStatementsNode{}
	case EmbeddedVariableNodeType:
		return &EmbeddedVariableNode{}
	case EnsureNodeType:
		return &EnsureNode{}
	case FalseNodeType:
		return &FalseNode{}
	case FindPatternNodeType:
		return &FindPatternNode{}
	case FloatNodeType:
		return &FloatNode{}
	case ForNodeType:
		return &ForNode{}
	case ForwardingArgumentsNodeType:
		return &ForwardingArgumentsNode{}
	case ForwardingParameterNodeType:
		return &ForwardingParameterNode{}
	case ForwardingSuperNodeType:
		return &ForwardingSuperNode{}
	case GlobalVariableReadNodeType:
		return &GlobalVariableReadNode{}
	case GlobalVariableTargetNodeType:
		return &GlobalVariableTargetNode{}
	case GlobalVariableWriteNodeType:
		return &GlobalVariableWriteNode{}
	case HashNodeType:
		return &HashNode{}
	case HashPatternNodeType:
		return &HashPatternNode{}
	case IfNodeType:
		return &IfNode{}
	case ImaginaryNodeType:
		return &ImaginaryNode{}
	case InNodeType:
		return &InNode{}
	case InstanceVariableReadNodeType:
		return &InstanceVariableReadNode{}
	case InstanceVariableTargetNodeType:
		return &InstanceVariableTargetNode{}
	case InstanceVariableWriteNodeType:
		return &InstanceVariableWriteNode{}
	case IntegerNodeType:
		return &IntegerNode{}
	case InterpolatedRegularExpressionNodeType:
		return &InterpolatedRegularExpressionNode{}
	case InterpolatedStringNodeType:
		return &InterpolatedStringNode{}
	case InterpolatedSymbolNodeType:
		return &InterpolatedSymbolNode{}
	case InterpolatedXStringNodeType:
		return &InterpolatedXStringNode{}
	case KeywordHashNodeType:
		return &KeywordHashNode{}
	case KeywordParameterNodeType:
		return &KeywordParameterNode{}
	case KeywordRestParameterNodeType:
		return &KeywordRestParameterNode{}
	case LambdaNodeType:
		return &LambdaNode{}
	case LocalVariableReadNodeType:
		return &LocalVariableReadNode{}
	case LocalVariableTargetNodeType:
		return &LocalVariableTargetNode{}
	case LocalVariableWriteNodeType:
		return &LocalVariableWriteNode{}
	case MatchPredicateNodeType:
		return &MatchPredicateNode{}
	case MatchRequiredNodeType:
		return &MatchRequiredNode{}
	case MatchWriteNodeType:
		return &MatchWriteNode{}
	case MissingNodeType:
		return &MissingNode{}
	case ModuleNodeType:
		return &ModuleNode{}
	case MultiWriteNodeType:
		return &MultiWriteNode{}
	case NextNodeType:
		return &NextNode{}
	case NilNodeType:
		return &NilNode{}
	case NoKeywordsParameterNodeType:
		return &NoKeywordsParameterNode{}
	case NumberedReferenceReadNodeType:
		return &NumberedReferenceReadNode{}
	case OperatorWriteNodeType:
		return &OperatorWriteNode{}
	case OptionalParameterNodeType:
		return &OptionalParameterNode{}
	case OrNodeType:
		return &OrNode{}
	case OrWriteNodeType:
		return &OrWriteNode{}
	case ParametersNodeType:
		return &ParametersNode{}
	case ParenthesesNodeType:
		return &ParenthesesNode{}
	case PinnedExpressionNodeType:
		return &PinnedExpressionNode{}
	case PinnedVariableNodeType:
		return &PinnedVariableNode{}
	case PostExecutionNodeType:
		return &PostExecutionNode{}
	case PreExecutionNodeType:
		return &PreExecutionNode{}
	case ProgramNodeType:
		return &ProgramNode{}
	case RangeNodeType:
		return &RangeNode{}
	case RationalNodeType:
		return &RationalNode{}
	case RedoNodeType:
		return &RedoNode{}
	case RegularExpressionNodeType:
		return &RegularExpressionNode{}
	case RequiredDestructuredParameterNodeType:
		return &RequiredDestructuredParameterNode{}
	case RequiredParameterNodeType:
		return &RequiredParameterNode{}
	case RescueModifierNodeType:
		return &RescueModifierNode{}
	case RescueNodeType:
		return &RescueNode{}
	case RestParameterNodeType:
		return &RestParameterNode{}
	case RetryNodeType:
		return &RetryNode{}
	case ReturnNodeType:
		return &ReturnNode{}
	case SelfNodeType:
		return &SelfNode{}
	case SingletonClassNodeType:
		return &SingletonClassNode{}
	case SourceEncodingNodeType:
		return &SourceEncodingNode{}
	case SourceFileNodeType:
		return &SourceFileNode{}
	case SourceLineNodeType:
		return &SourceLineNode{}
	case SplatNodeType:
		return &SplatNode{}
	case StatementsNodeType:
		return &StatementsNode{}
	case StringConcatNodeType:
		return &StringConcatNode{}
	case StringNodeType:
		return &StringNode{}
	case SuperNodeType:
		return &SuperNode{}
	case SymbolNodeType:
		return &SymbolNode{}
	case TrueNodeType:
		return &TrueNode{}
	case UndefNodeType:
		return &UndefNode{}
	case UnlessNodeType:
		return &UnlessNode{}
	case UntilNodeType:
		return &UntilNode{}
	case WhenNodeType:
		return &WhenNode{}
	case WhileNodeType:
		return &WhileNode{}
	case XStringNodeType:
		return &XStringNode{}
	case YieldNodeType:
		return &YieldNode{}
	}
	return nil
}

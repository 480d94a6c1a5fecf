package analyzer

// ProductClasses is the closed set of COCO labels considered
// commerce-relevant. A frame "has a product" iff at least one detection's
// class name is in this set (exact, case-sensitive match).
var ProductClasses = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
	"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake",
	"chair", "couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop",
	"mouse", "remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
	"refrigerator", "book", "clock", "vase", "scissors", "teddy bear", "hair drier",
	"toothbrush", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard",
	"sports ball", "kite", "baseball bat", "baseball glove", "skateboard", "surfboard",
	"tennis racket", "backpack", "umbrella",
}

var productClassSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ProductClasses))
	for _, class := range ProductClasses {
		set[class] = struct{}{}
	}
	return set
}()

// IsProductClass reports whether the class name belongs to the product
// vocabulary.
func IsProductClass(className string) bool {
	_, ok := productClassSet[className]
	return ok
}
